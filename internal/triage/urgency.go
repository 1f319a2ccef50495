package triage

// Urgent is the deterministic red-flag classifier. It runs on raw
// tokens, independent of scoring. A report is urgent when any rule
// fires:
//
//  1. tokens contain both "chest" and "pain"
//  2. tokens contain both "shortness" and "breath"
//  3. tokens contain "faint" or "unconscious"
//  4. age is over 75 and tokens contain "breath" or "shortness"
//
// Token order is irrelevant; only set membership matters.
func Urgent(tokens []string, age int) bool {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	has := func(w string) bool {
		_, ok := set[w]
		return ok
	}

	if has("chest") && has("pain") {
		return true
	}
	if has("shortness") && has("breath") {
		return true
	}
	if has("faint") || has("unconscious") {
		return true
	}
	if age > 75 && (has("breath") || has("shortness")) {
		return true
	}
	return false
}
