package services

import (
	"strconv"
	"strings"
)

// Requirement codes are dot-segmented: a child of CUR.4 is CUR.4.1. The rules
// below are shared by the add and update flows so both derive identically.
//
// Given raw user input, an optional parent code and the sibling codes already
// under that parent, DeriveRequirementCode produces the stored code:
//
//   - parent set, raw empty:      parent + "." + (max numeric sibling suffix + 1)
//   - parent set, raw has no dot: parent + "." + raw
//   - parent set, raw has a dot:  raw verbatim (caller supplies a qualified code)
//   - no parent:                  raw is required; qualified against the owning
//     criteria code unless it already contains a dot
func DeriveRequirementCode(raw string, parentCode *string, criteriaCode string, siblingCodes []string) (string, error) {
	raw = strings.TrimSpace(raw)

	if parentCode != nil && *parentCode != "" {
		if raw == "" {
			return NextChildCode(*parentCode, siblingCodes), nil
		}
		return QualifyCode(*parentCode, raw), nil
	}

	if raw == "" {
		return "", missingField("RequirementCode", "Requirement code is required")
	}
	return QualifyCode(criteriaCode, raw), nil
}

// NextChildCode returns the next auto-generated child code under parent.
// Suffixes are compared numerically across all siblings, so P.9 and P.10
// order correctly and gaps left by deletions are never reused:
// siblings P.1, P.2, P.5 yield P.6.
func NextChildCode(parent string, siblingCodes []string) string {
	max := 0
	for _, code := range siblingCodes {
		if n, ok := trailingInt(code); ok && n > max {
			max = n
		}
	}
	return parent + "." + strconv.Itoa(max+1)
}

// QualifyCode prefixes raw with prefix and a dot unless raw already contains
// a dot, in which case the caller is asserting a fully-qualified code.
func QualifyCode(prefix, raw string) string {
	if strings.Contains(raw, ".") {
		return raw
	}
	return prefix + "." + raw
}

func trailingInt(code string) (int, bool) {
	idx := strings.LastIndex(code, ".")
	n, err := strconv.Atoi(code[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
