package template

import (
	"errors"
	"testing"

	"github.com/Alfex4936/wordweave/internal/errs"
	"github.com/Alfex4936/wordweave/internal/model"
)

func tagged(pairs ...string) []model.TaggedWord {
	out := make([]model.TaggedWord, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.TaggedWord{Text: pairs[i], Tag: pairs[i+1]})
	}
	return out
}

func TestBuild(t *testing.T) {
	b := New(nil)
	tests := []struct {
		name string
		in   []model.TaggedWord
		want string
	}{
		{"adjective with aux", tagged("I", "PRP", "Oreo", "NNP", "eat", "VB", "hungry", "JJ"), "I am hungry want to eat Oreo."},
		{"plain", tagged("she", "PRP", "swim", "VB"), "She swim."},
		{"noun subject", tagged("penguin", "NN", "swim", "VB", "pool", "NN"), "Penguin swim pool."},
		{"noun subject with adjective", tagged("penguin", "NN", "happy", "JJ", "swim", "VB"), "Penguin is happy want to swim."},
		{"adverb as adjective", tagged("they", "PRP", "quickly", "RB", "run", "VB"), "They are quickly want to run."},
		{"inferred verb", tagged("I", "PRP", "hungry", "JJ", "pizza", "NN"), "I am hungry want to eat pizza."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := b.Build(tt.in)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildMissing(t *testing.T) {
	b := New(map[string]string{})
	_, _, err := b.Build(tagged("quickly", "RB", "run", "VB"))
	var v *errs.ValidationError
	if !errors.As(err, &v) || len(v.Missing) != 1 || v.Missing[0] != "noun" {
		t.Fatalf("err = %v, want missing noun", err)
	}
	_, _, err = b.Build(tagged("he", "PRP", "tired", "JJ", "coffee", "NN"))
	if !errors.As(err, &v) || len(v.Missing) != 1 || v.Missing[0] != "verb" {
		t.Fatalf("err = %v, want missing verb", err)
	}
	_, _, err = b.Build(nil)
	if !errors.As(err, &v) || len(v.Missing) != 2 {
		t.Fatalf("err = %v, want verb and noun missing", err)
	}
}

func TestInferVerb(t *testing.T) {
	b := New(nil)
	tests := []struct {
		in   []model.TaggedWord
		want string
	}{
		{tagged("he", "PRP", "tired", "JJ"), "sleep"},
		{tagged("we", "PRP", "pools", "NNS"), "swim"},
		{tagged("I", "PRP", "drawing", "NN"), "draw"},
	}
	for _, tt := range tests {
		got, ok := b.InferVerb(tt.in)
		if !ok || got != tt.want {
			t.Errorf("InferVerb(%v) = %q,%v want %q", tt.in, got, ok, tt.want)
		}
	}
	if _, ok := b.InferVerb(tagged("it", "PRP", "zzyzx", "NN")); ok {
		t.Error("unknown noun should not infer a verb")
	}
}

func TestExtractMarksInferred(t *testing.T) {
	s := New(nil).Extract(tagged("I", "PRP", "thirsty", "JJ"))
	if s.Verb != "drink" || !s.Inferred || s.Subject != "I" || s.Adjective != "thirsty" {
		t.Fatalf("Extract() = %+v", s)
	}
}

func TestAuxiliary(t *testing.T) {
	for subject, want := range map[string]string{
		"I": "am", "he": "is", "She": "is", "it": "is",
		"you": "are", "We": "are", "they": "are",
		"Oreo": "is", "": "",
	} {
		if got := Auxiliary(subject); got != want {
			t.Errorf("Auxiliary(%q) = %q, want %q", subject, got, want)
		}
	}
}
