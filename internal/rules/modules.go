package rules

import (
	"fmt"
	"strings"

	"github.com/solweave/idlvet/internal/crate"
)

// requiredCapability pairs a function name with its canonical return-type
// text.
type requiredCapability struct {
	name    string
	returns string
}

// payloadContract is the serialization triple every payload type exposes.
var payloadContract = []requiredCapability{
	{"try_to_vec", "std::io::Result<Vec<u8>>"},
	{"from_bytes", "Result<Self, std::io::Error>"},
	{"default", "Self"},
}

// checkPayloadContract appends an error per missing capability and a
// warning per return-type drift for the given type.
func checkPayloadContract(m *crate.Module, typeName string, errors, warnings *[]string) {
	for _, req := range payloadContract {
		key := typeName + "::" + req.name
		sig, ok := m.Symbols.Functions[key]
		if !ok {
			*errors = append(*errors, fmt.Sprintf("%s is missing %s()", typeName, req.name))
			continue
		}
		if !returnTypeCompatible(sig.ReturnType, req.returns) {
			*warnings = append(*warnings, fmt.Sprintf(
				"%s::%s return type drift: expected %s, found %s",
				typeName, req.name, req.returns, sig.ReturnType))
		}
	}
}

// returnTypeCompatible compares return-type text loosely. The comparison is
// textual and approximate, which is why drift only ever warns.
func returnTypeCompatible(actual, expected string) bool {
	actual = strings.TrimSpace(actual)
	expected = strings.TrimSpace(expected)

	if strings.Contains(expected, "Self") {
		return strings.Contains(actual, "Self") || strings.HasSuffix(actual, "Error>")
	}

	return strings.ReplaceAll(actual, " ", "") == strings.ReplaceAll(expected, " ", "")
}

// isPayloadName reports whether a type name qualifies for the payload
// contract within a single module (neither an address list nor instruction
// data, which the instructions validator covers separately).
func isPayloadName(name string) bool {
	return !strings.HasSuffix(name, KeyListSuffix) && !strings.HasSuffix(name, InstructionDataSuffix)
}

// InstructionsValidator checks the instruction encoder module.
type InstructionsValidator struct {
	Module *crate.Module
}

func (v *InstructionsValidator) Name() string { return "instructions" }

func (v *InstructionsValidator) Validate() Result {
	if !v.Module.Exists {
		return fail(v.Name(), "instructions module should exist but was not generated")
	}

	var errors, warnings []string

	for _, typeName := range v.Module.TypeNames() {
		switch {
		case strings.HasSuffix(typeName, InstructionDataSuffix):
			checkPayloadContract(v.Module, typeName, &errors, &warnings)
		case strings.HasSuffix(typeName, KeyListSuffix):
			if !v.Module.HasFunction(typeName + "::from") {
				errors = append(errors, fmt.Sprintf(
					"%s is missing a From<&[Pubkey]> conversion", typeName))
			}
		}
	}

	if len(v.Module.ConstantsWithSuffix("_IX_DISCM")) == 0 {
		warnings = append(warnings, "no instruction discriminator constants found")
	}
	if len(v.Module.ConstantsWithSuffix("_IX_ACCOUNTS_LEN")) == 0 {
		warnings = append(warnings, "no account count constants found")
	}

	return finish(v.Name(), errors, warnings, nil)
}

// AccountsValidator checks the account state module against the IDL's
// accounts section.
type AccountsValidator struct {
	Module      *crate.Module
	HasAccounts bool
}

func (v *AccountsValidator) Name() string { return "accounts" }

func (v *AccountsValidator) Validate() Result {
	if !v.HasAccounts {
		if v.Module.Exists {
			return fail(v.Name(), "accounts module generated but the IDL has no accounts section")
		}
		return pass(v.Name(), "accounts module correctly skipped (IDL has no accounts section)")
	}

	if !v.Module.Exists {
		return fail(v.Name(), "accounts module should exist but was not generated")
	}

	var errors, warnings []string

	for _, typeName := range v.Module.TypeNames() {
		if isPayloadName(typeName) {
			checkPayloadContract(v.Module, typeName, &errors, &warnings)
		}
	}

	if len(v.Module.ConstantsWithSuffix("_ACCOUNT_DISCM")) == 0 {
		warnings = append(warnings, "no account discriminator constants found")
	}

	return finish(v.Name(), errors, warnings, nil)
}

// EventsValidator checks the optional event payload module.
type EventsValidator struct {
	Module *crate.Module
}

func (v *EventsValidator) Name() string { return "events" }

func (v *EventsValidator) Validate() Result {
	if !v.Module.Exists {
		return pass(v.Name(), "events module not generated (IDL has no events)")
	}

	var errors, warnings []string
	qualifying := 0

	for _, typeName := range v.Module.TypeNames() {
		if !isPayloadName(typeName) {
			continue
		}
		qualifying++
		checkPayloadContract(v.Module, typeName, &errors, &warnings)
	}

	if qualifying > 0 && len(v.Module.ConstantsWithSuffix("_EVENT_DISCM")) == 0 {
		warnings = append(warnings, "event types present but no event discriminator constants found")
	}

	return finish(v.Name(), errors, warnings, nil)
}

// ParsersValidator checks the opcode dispatch module.
type ParsersValidator struct {
	Module      *crate.Module
	HasAccounts bool
	ProgramName string
}

func (v *ParsersValidator) Name() string { return "parsers" }

func (v *ParsersValidator) Validate() Result {
	if !v.Module.Exists {
		return fail(v.Name(), "parsers module should exist but was not generated")
	}

	var errors []string

	if !v.Module.HasFunction("parse_instruction") {
		errors = append(errors, "missing parse_instruction()")
	}

	if v.HasAccounts {
		if !v.Module.HasFunction("try_unpack_account") {
			errors = append(errors, "missing try_unpack_account()")
		}
	} else if v.Module.HasFunction("try_unpack_account") {
		errors = append(errors, "try_unpack_account() generated but the IDL has no accounts section")
	}

	if name := v.findEnum(InstructionEnumNames(v.ProgramName)); name == "" {
		errors = append(errors, fmt.Sprintf(
			"missing instruction dispatch enum (one of %s)",
			strings.Join(InstructionEnumNames(v.ProgramName), ", ")))
	}

	accountEnum := v.findEnum(AccountEnumNames(v.ProgramName))
	if v.HasAccounts {
		if accountEnum == "" {
			errors = append(errors, fmt.Sprintf(
				"missing account dispatch enum (one of %s)",
				strings.Join(AccountEnumNames(v.ProgramName), ", ")))
		}
	} else if accountEnum != "" {
		errors = append(errors, fmt.Sprintf(
			"%s generated but the IDL has no accounts section", accountEnum))
	}

	return finish(v.Name(), errors, nil, nil)
}

func (v *ParsersValidator) findEnum(names []string) string {
	for _, name := range names {
		if v.Module.Symbols.Types[name] {
			return name
		}
	}
	return ""
}
