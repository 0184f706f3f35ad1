package rules

import (
	"fmt"
	"strings"

	"github.com/solweave/idlvet/internal/crate"
)

// CrossModuleValidator re-partitions every discovered type across all
// modules into families and enforces each family's capability contract per
// (module, type) occurrence. A type complete in one module and incomplete
// in another is reported against the incomplete module only.
type CrossModuleValidator struct {
	Crate       *crate.Crate
	ProgramName string
}

func (v *CrossModuleValidator) Name() string { return "cross-module" }

func (v *CrossModuleValidator) Validate() Result {
	var (
		missingSerialize   []string
		missingDeserialize []string
		missingConversion  []string
		missingToVec       []string
		missingDefault     []string
		payloadPairs       int
		keyListPairs       int
	)

	for _, m := range v.Crate.ModulesInOrder() {
		if !m.Exists {
			continue
		}
		for _, typeName := range m.TypeNames() {
			occurrence := m.Name + "::" + typeName

			switch Classify(typeName, v.ProgramName) {
			case FamilyDispatchEnum:
				// Tagged unions carry no serialization contract.
			case FamilyKeyList:
				keyListPairs++
				if !m.HasFunction(typeName + "::from") {
					missingConversion = append(missingConversion, occurrence)
				}
				if !m.HasFunction(typeName + "::to_vec") {
					missingToVec = append(missingToVec, occurrence)
				}
			case FamilyPayload:
				payloadPairs++
				if !m.HasFunction(typeName + "::try_to_vec") {
					missingSerialize = append(missingSerialize, occurrence)
				}
				if !m.HasFunction(typeName + "::from_bytes") {
					missingDeserialize = append(missingDeserialize, occurrence)
				}
				if !m.HasFunction(typeName + "::default") {
					missingDefault = append(missingDefault, occurrence)
				}
			}
		}
	}

	var errors, warnings []string
	if msg := summarize("payload types missing try_to_vec()", missingSerialize); msg != "" {
		errors = append(errors, msg)
	}
	if msg := summarize("payload types missing from_bytes()", missingDeserialize); msg != "" {
		errors = append(errors, msg)
	}
	if msg := summarize("key list types missing From<&[Pubkey]>", missingConversion); msg != "" {
		errors = append(errors, msg)
	}
	if msg := summarize("key list types missing to_vec()", missingToVec); msg != "" {
		errors = append(errors, msg)
	}
	if msg := summarize("payload types missing default()", missingDefault); msg != "" {
		warnings = append(warnings, msg)
	}

	infos := []string{
		fmt.Sprintf("payload type occurrences: %d", payloadPairs),
		fmt.Sprintf("key list type occurrences: %d", keyListPairs),
	}

	return finish(v.Name(), errors, warnings, infos)
}

// summarize lists the first three offenders plus a total, keeping detail
// lines readable for crates with hundreds of types.
func summarize(label string, occurrences []string) string {
	if len(occurrences) == 0 {
		return ""
	}
	shown := occurrences
	if len(shown) > 3 {
		shown = shown[:3]
	}
	msg := fmt.Sprintf("%s: %s", label, strings.Join(shown, ", "))
	if len(occurrences) > 3 {
		msg += fmt.Sprintf(" (and %d more)", len(occurrences)-3)
	}
	return msg
}
