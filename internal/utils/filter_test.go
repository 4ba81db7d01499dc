package utils

import "testing"

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		want        bool
	}{
		{description: "plain word", input: "hello", want: true},
		{description: "accented word", input: "fiancé", want: true},
		{description: "contraction", input: "it's", want: true},
		{description: "hyphenated", input: "semi-final", want: true},
		{description: "empty", input: "", want: false},
		{description: "only digits", input: "1234", want: false},
		{description: "symbol noise", input: "he@llo", want: false},
		{description: "keyboard mash", input: "dddd", want: false},
		{description: "two repeats pass", input: "aa", want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := IsValidInput(tc.input); got != tc.want {
				t.Errorf("IsValidInput(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestIsRepetitive(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		want        bool
	}{
		{description: "ascii run", input: "aaa", want: true},
		{description: "accented run", input: "ééé", want: true},
		{description: "short run", input: "aa", want: false},
		{description: "mixed", input: "aab", want: false},
		{description: "empty", input: "", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := IsRepetitive(tc.input); got != tc.want {
				t.Errorf("IsRepetitive(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestFormatWithCommas(t *testing.T) {
	testCases := []struct {
		input int
		want  string
	}{
		{input: 0, want: "0"},
		{input: 999, want: "999"},
		{input: 1000, want: "1,000"},
		{input: 65535, want: "65,535"},
		{input: 1234567, want: "1,234,567"},
	}

	for _, tc := range testCases {
		if got := FormatWithCommas(tc.input); got != tc.want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestCreateRankList(t *testing.T) {
	ranks := CreateRankList(3)
	if len(ranks) != 3 || ranks[0] != 1 || ranks[2] != 3 {
		t.Errorf("unexpected ranks: %v", ranks)
	}

	if got := CreateRankList(0); len(got) != 0 {
		t.Errorf("expected empty rank list, got %v", got)
	}

	big := CreateRankList(70000)
	if big[65534] != 65535 || big[69999] != 65535 {
		t.Errorf("ranks must saturate at 65535, got tail %d and %d", big[65534], big[69999])
	}
}
