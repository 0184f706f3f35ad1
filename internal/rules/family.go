package rules

import (
	"strings"
	"unicode"
)

// Family classifies a generated type by the capability contract it must
// honor.
type Family int

const (
	// FamilyPayload types are serializable data records (instruction data,
	// account state, events). They expose try_to_vec/from_bytes/default.
	FamilyPayload Family = iota
	// FamilyKeyList types are ordered participant address lists. They
	// expose from(&[Pubkey]) and to_vec().
	FamilyKeyList
	// FamilyDispatchEnum types are tagged unions routing by discriminator.
	// They carry no serialization contract of their own.
	FamilyDispatchEnum
)

// Generated name suffixes the classifier keys on.
const (
	KeyListSuffix         = "Keys"
	InstructionDataSuffix = "IxData"
)

// Generic dispatch enum names the generator emits for unnamed programs.
const (
	GenericInstructionEnum = "ProgramInstruction"
	GenericAccountEnum     = "ProgramAccount"
)

// Classify derives the family of a type name. The rule is a naming
// heuristic matching the generator's emission contract: a Keys suffix
// marks an address list, the reserved dispatch names (or their
// program-prefixed forms) mark tagged unions, everything else is a
// payload. Unconventionally named types can misclassify; there is no
// stronger rule without parsing the type body.
func Classify(typeName, programName string) Family {
	if strings.HasSuffix(typeName, KeyListSuffix) {
		return FamilyKeyList
	}
	if IsDispatchEnum(typeName, programName) {
		return FamilyDispatchEnum
	}
	return FamilyPayload
}

// IsDispatchEnum reports whether the name is one of the accepted dispatch
// enum forms.
func IsDispatchEnum(typeName, programName string) bool {
	names := InstructionEnumNames(programName)
	names = append(names, AccountEnumNames(programName)...)
	for _, name := range names {
		if typeName == name {
			return true
		}
	}
	return false
}

// InstructionEnumNames returns the accepted names for the instruction
// dispatch enum: the generic form and the program-prefixed form.
func InstructionEnumNames(programName string) []string {
	return enumNames(GenericInstructionEnum, programName, "Instruction")
}

// AccountEnumNames returns the accepted names for the account dispatch
// enum.
func AccountEnumNames(programName string) []string {
	return enumNames(GenericAccountEnum, programName, "Account")
}

func enumNames(generic, programName, suffix string) []string {
	names := []string{generic}
	if prefix := upperCamel(programName); prefix != "" && prefix != "Unknown" {
		if prefixed := prefix + suffix; prefixed != generic {
			names = append(names, prefixed)
		}
	}
	return names
}

// upperCamel converts a program name like "raydium_amm" to "RaydiumAmm".
func upperCamel(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			upperNext = true
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
