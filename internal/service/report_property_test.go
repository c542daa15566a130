package service

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

func TestProperty_ComplianceAlwaysCapped(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("exercise compliance stays within zero and one hundred", prop.ForAll(
		func(minutes []int, periodDays int) bool {
			report := ComposeReport("p", "n", time.Now(), periodDays, exerciseFromMinutes(minutes), nil, nil, nil)
			return report.ExerciseCompliancePercent >= 0 && report.ExerciseCompliancePercent <= 100
		},
		gen.SliceOf(gen.IntRange(0, 600)),
		gen.IntRange(1, 365),
	))

	properties.Property("more exercise never lowers compliance", prop.ForAll(
		func(minutes []int, extra int) bool {
			exercise := exerciseFromMinutes(minutes)
			before := ComposeReport("p", "n", time.Now(), 30, exercise, nil, nil, nil).ExerciseCompliancePercent

			more := append([]model.ExerciseLog{{DurationMinutes: extra}}, exercise...)
			after := ComposeReport("p", "n", time.Now(), 30, more, nil, nil, nil).ExerciseCompliancePercent

			return after >= before
		},
		gen.SliceOf(gen.IntRange(0, 600)),
		gen.IntRange(0, 600),
	))

	properties.TestingRun(t)
}

func TestProperty_ChatCountsBounded(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("chat question counts never exceed the transcript length", prop.ForAll(
		func(roles []bool, scopes []bool) bool {
			n := len(roles)
			if len(scopes) < n {
				n = len(scopes)
			}

			chats := make([]model.ChatMessage, n)
			for i := 0; i < n; i++ {
				chats[i].Role = model.ChatRoleAssistant
				if roles[i] {
					chats[i].Role = model.ChatRoleUser
				}
				chats[i].InScope = scopes[i]
			}

			report := ComposeReport("p", "n", time.Now(), 7, nil, nil, nil, chats)
			return report.ChatQuestions <= n && report.OutOfScopeQuestions <= n
		},
		gen.SliceOf(gen.Bool()),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestProperty_MostCommonSymptomCapitalized(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("reported symptom is capitalized or the default placeholder", prop.ForAll(
		func(symptoms []string) bool {
			journal := make([]model.JournalEntry, len(symptoms))
			for i := range symptoms {
				journal[i].Symptoms = &symptoms[i]
			}

			report := ComposeReport("p", "n", time.Now(), 7, nil, nil, journal, nil)

			if report.MostCommonSymptom == "None Reported" {
				return true
			}
			first := report.MostCommonSymptom[:1]
			return first == strings.ToUpper(first)
		},
		gen.SliceOf(gen.RegexMatch("[a-z ,;]{0,20}")),
	))

	properties.TestingRun(t)
}
