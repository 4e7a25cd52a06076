package lottery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateChallenge(t *testing.T) {
	cases := []struct {
		text     string
		expected int
	}{
		{text: "Policz: 3 + 4 =", expected: 7},
		{text: "3+4", expected: 7},
		{text: "  10 - 3 ", expected: 7},
		{text: "1 + 2 + 3 - 4", expected: 2},
		{text: "<span>8</span> <b>+</b> 1", expected: 9},
		{text: "Ile to 5 &minus; 2?", expected: 3},
		{text: "Ile to 5 − 2?", expected: 3},
		{text: "2 - 9 =", expected: -7},
		{text: "Rok 2016: 4 + 4", expected: 8},
		{text: "Wpisz 7", expected: 7},
		{text: "007 + 1", expected: 8},
	}

	for _, test := range cases {
		result, err := EvaluateChallenge(test.text)
		if err != nil {
			t.Fatal(test.text, err)
		}
		require.Equal(t, test.expected, result, test.text)
	}
}

func TestEvaluateChallengeInvalid(t *testing.T) {
	for _, text := range []string{
		"",
		"Policz: trzy plus cztery",
		"+ - =",
		"99999999999999999999999 + 1",
	} {
		_, err := EvaluateChallenge(text)
		require.Error(t, err, text)
	}
}

func TestEvaluateChallengeIgnoresCode(t *testing.T) {
	// a scraped challenge is data, anything but the arithmetic is skipped
	result, err := EvaluateChallenge(`<script>alert(1)</script>2 + 2; process.exit()`)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 4, result)
}
