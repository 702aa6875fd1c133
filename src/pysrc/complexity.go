package pysrc

import "regexp"

// Function is a def block with its measured complexity.
type Function struct {
	Name       string
	Line       int // line of the def statement
	Complexity int
}

var defRe = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+([A-Za-z_][A-Za-z0-9_]*)`)

// decisionRe matches the tokens mccabe treats as decision points: branch
// and loop keywords, exception handlers, and boolean operators.
var decisionRe = regexp.MustCompile(`\b(if|elif|for|while|except|and|or)\b`)

// Functions finds def blocks in scanned lines and counts a decision-point
// complexity for each: 1 plus the number of branch keywords and boolean
// operators in the body. Nested defs are counted separately and their
// bodies still contribute to the enclosing function, matching how a flat
// threshold reads in practice.
func Functions(lines []Line) []Function {
	type open struct {
		fn     Function
		indent int
	}
	var stack []open
	var done []Function

	closeDeeper := func(indent int) {
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			done = append(done, stack[len(stack)-1].fn)
			stack = stack[:len(stack)-1]
		}
	}

	for _, ln := range lines {
		if ln.Blank || ln.Comment || ln.InString {
			continue
		}

		indent := Indent(ln.Code)
		if m := defRe.FindStringSubmatch(ln.Code); m != nil {
			closeDeeper(indent)
			stack = append(stack, open{
				fn:     Function{Name: m[2], Line: ln.Num, Complexity: 1},
				indent: indent,
			})
			continue
		}

		closeDeeper(indent)
		if len(stack) == 0 {
			continue
		}

		n := len(decisionRe.FindAllString(ln.Code, -1))
		if n > 0 {
			for i := range stack {
				stack[i].fn.Complexity += n
			}
		}
	}

	closeDeeper(0)
	return done
}
