package knowledge

// Builtin returns the default symptom table shipped with the server.
// Keyword and candidate order is deliberate: ranking tie-breaks follow it.
func Builtin() *Base {
	b, err := New([]Entry{
		{Keyword: "fever", Candidates: []Candidate{
			{Name: "Influenza", Summary: "Common viral infection causing fever and body aches."},
			{Name: "COVID-19", Summary: "May cause fever, cough, and fatigue."},
		}},
		{Keyword: "cough", Candidates: []Candidate{
			{Name: "Common Cold", Summary: "Usually mild; cough, runny nose."},
			{Name: "Bronchitis", Summary: "Inflammation of airways; may produce wheeze or phlegm."},
		}},
		{Keyword: "chest pain", Candidates: []Candidate{
			{Name: "Angina / Cardiac", Summary: "Could be heart-related — seek immediate care for severe pain."},
			{Name: "Reflux", Summary: "Acid reflux can mimic chest discomfort."},
		}},
		{Keyword: "headache", Candidates: []Candidate{
			{Name: "Migraine", Summary: "Severe, throbbing, may have light sensitivity."},
			{Name: "Tension headache", Summary: "Often stress-related."},
		}},
		{Keyword: "nausea", Candidates: []Candidate{
			{Name: "Gastroenteritis", Summary: "Stomach bug; nausea, sometimes vomiting."},
		}},
		{Keyword: "shortness of breath", Candidates: []Candidate{
			{Name: "Asthma/Reactive airway", Summary: "Wheezing and breathlessness."},
			{Name: "Pneumonia", Summary: "Infection causing cough and breathing difficulty."},
		}},
		{Keyword: "abdominal pain", Candidates: []Candidate{
			{Name: "Appendicitis", Summary: "Localized severe pain — seek care if severe."},
			{Name: "Gastritis", Summary: "Stomach inflammation causing pain."},
		}},
	})
	if err != nil {
		// the builtin table is authored here and validated by tests
		panic(err)
	}
	return b
}
