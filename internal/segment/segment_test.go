package segment

import (
	"strings"
	"testing"
)

func TestExperiments_TwoHeadings(t *testing.T) {
	text := "Experiment 1\nAim: measure g.\nExperiment 2\nAim: verify Ohm's law."
	records := Experiments(text)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Title != "Experiment 1" {
		t.Errorf("record 0 title: expected %q, got %q", "Experiment 1", records[0].Title)
	}
	if records[1].Title != "Experiment 2" {
		t.Errorf("record 1 title: expected %q, got %q", "Experiment 2", records[1].Title)
	}
	if !strings.Contains(records[0].Body, "measure g") {
		t.Errorf("record 0 body missing its content: %q", records[0].Body)
	}
	if strings.Contains(records[0].Body, "Ohm") {
		t.Errorf("record 0 body ran past the next heading: %q", records[0].Body)
	}
	if !strings.Contains(records[1].Body, "Ohm's law") {
		t.Errorf("record 1 body missing its content: %q", records[1].Body)
	}
}

func TestExperiments_BodiesReconstructText(t *testing.T) {
	// Concatenating the bodies must reproduce the text from the first
	// heading to the end, with nothing dropped or duplicated.
	prefix := "Course syllabus and safety preamble.\n"
	rest := "Experiment 1\nfirst body\nExp 2\nsecond body\nPractical 3\nthird body"
	records := Experiments(prefix + rest)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	var joined strings.Builder
	for _, r := range records {
		joined.WriteString(r.Body)
	}
	if joined.String() != rest {
		t.Errorf("bodies do not partition the text:\nwant %q\ngot  %q", rest, joined.String())
	}
}

func TestExperiments_NoMatches(t *testing.T) {
	records := Experiments("General lab rules. Wear goggles at all times.")
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestExperiments_CaseInsensitive(t *testing.T) {
	records := Experiments("EXPERIMENT 7\nSomething.\nexp 8\nElse.")
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Title != "EXPERIMENT 7" {
		t.Errorf("expected title preserved as matched, got %q", records[0].Title)
	}
}

func TestExperiments_NumberedLineHeading(t *testing.T) {
	text := "Intro.\n1. Determination of viscosity\nProcedure follows.\n2. Paper chromatography\nMore steps."
	records := Experiments(text)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Title != "1. Determination of viscosity" {
		t.Errorf("record 0 title: got %q", records[0].Title)
	}
	if records[1].Title != "2. Paper chromatography" {
		t.Errorf("record 1 title: got %q", records[1].Title)
	}
}

func TestExperiments_NumberedLineRequiresLetter(t *testing.T) {
	// "3. 14159" is a numbered value, not a heading: the character after
	// the dot-space must be a letter.
	records := Experiments("Constants:\n3. 14159 is close to pi\n")
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestExperiments_TitleTrimmed(t *testing.T) {
	records := Experiments("Experiment  12  \nBody text.")
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Title != "Experiment  12" {
		t.Errorf("expected trimmed title, got %q", records[0].Title)
	}
}

func TestExperiments_LastBodyRunsToEnd(t *testing.T) {
	text := "Experiment 1\nonly body, runs to the very end"
	records := Experiments(text)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Body != text {
		t.Errorf("expected body to span to end of text, got %q", records[0].Body)
	}
}
