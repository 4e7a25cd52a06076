package lottery

import (
	"errors"
	"fmt"
	"math"
	"unicode"

	"receiptlottery/lib/htmlutil"
)

type challengeTokenKind int

const (
	challengeNumber challengeTokenKind = iota
	challengeOperator
	challengeOther
)

type challengeToken struct {
	kind  challengeTokenKind
	value int
	// negate is set for subtraction operators
	negate bool
}

var errNoChallengeNumber = errors.New("challenge contains no number")

func tokenizeChallenge(text string) ([]challengeToken, error) {
	tokens := []challengeToken{}
	number := -1

	flush := func() {
		if number >= 0 {
			tokens = append(tokens, challengeToken{kind: challengeNumber, value: number})
			number = -1
		}
	}

	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			digit := int(r - '0')
			if number < 0 {
				number = 0
			}
			if number > (math.MaxInt-digit)/10 {
				return nil, fmt.Errorf("number in challenge %q is too large", text)
			}
			number = number*10 + digit
		case unicode.IsSpace(r):
			flush()
		case r == '+':
			flush()
			tokens = append(tokens, challengeToken{kind: challengeOperator})
		// hyphen, minus sign and en dash all show up in rendered challenges
		case r == '-' || r == '−' || r == '–':
			flush()
			tokens = append(tokens, challengeToken{kind: challengeOperator, negate: true})
		default:
			flush()
			tokens = append(tokens, challengeToken{kind: challengeOther})
		}
	}
	flush()

	return tokens, nil
}

// EvaluateChallenge solves the arithmetic captcha of the portal. Markup is
// stripped, then the first `int (('+'|'-') int)*` sequence of the remaining
// text is evaluated, surrounding words are ignored. A text with only lone
// numbers evaluates to the first of them.
func EvaluateChallenge(text string) (int, error) {
	tokens, err := tokenizeChallenge(htmlutil.StripTags(text))
	if err != nil {
		return 0, err
	}

	lone := -1
	for i := 0; i < len(tokens); i++ {
		if tokens[i].kind != challengeNumber {
			continue
		}

		total := tokens[i].value
		operations := 0
		for i+2 < len(tokens) &&
			tokens[i+1].kind == challengeOperator &&
			tokens[i+2].kind == challengeNumber {
			operand := tokens[i+2].value
			if tokens[i+1].negate {
				operand = -operand
			}
			if (operand > 0 && total > math.MaxInt-operand) ||
				(operand < 0 && total < math.MinInt-operand) {
				return 0, fmt.Errorf("challenge %q overflows", text)
			}
			total += operand
			operations++
			i += 2
		}

		if operations > 0 {
			return total, nil
		}
		if lone < 0 {
			lone = total
		}
	}

	if lone < 0 {
		return 0, fmt.Errorf("%w: %q", errNoChallengeNumber, text)
	}
	return lone, nil
}
