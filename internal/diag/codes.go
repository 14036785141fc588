package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Derivation errors
	DeriveInfo             Code = 1000
	DeriveTypeNotFound     Code = 1001
	DeriveNotInteger       Code = 1002
	DeriveNoVariants       Code = 1003
	DeriveValueOverflow    Code = 1004
	DeriveNameCollision    Code = 1005
	DeriveWideDiscriminant Code = 1006
	DeriveUnsupportedWidth Code = 1007
	DeriveAliasType        Code = 1008
	DeriveGeneric          Code = 1009

	// Variant warnings
	VarInfo        Code = 2000
	VarDuplicate   Code = 2001
	VarEmptyLabel  Code = 2002
	VarLabelClash  Code = 2003
	VarUnexported  Code = 2004
	VarOutsideFile Code = 2005

	// Package loading
	LoadInfo        Code = 3000
	LoadPackage     Code = 3001
	LoadNoPackages  Code = 3002
	LoadTypeErrors  Code = 3003
	LoadMixedOutput Code = 3004

	// Output
	IOInfo        Code = 4000
	IOWriteFailed Code = 4001
	IOStaleOutput Code = 4002
	IOFormat      Code = 4003

	// Project manifest
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
	ProjUnknownKey      Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		DeriveInfo:             "Derivation information",
		DeriveTypeNotFound:     "Type not found in package",
		DeriveNotInteger:       "Enumeration must have an integer underlying type",
		DeriveNoVariants:       "Enumeration declares no constants",
		DeriveValueOverflow:    "Constant does not fit the discriminant",
		DeriveNameCollision:    "Generated identifier collides with a declaration",
		DeriveWideDiscriminant: "64-bit discriminant on a 32-bit target",
		DeriveUnsupportedWidth: "Unsupported discriminant width",
		DeriveAliasType:        "Type alias cannot be derived",
		DeriveGeneric:          "Generic type cannot be derived",
		VarInfo:                "Variant information",
		VarDuplicate:           "Constant duplicates another variant's value",
		VarEmptyLabel:          "Trimmed variant name is empty",
		VarLabelClash:          "Variant names collide after trimming",
		VarUnexported:          "Unexported variant",
		VarOutsideFile:         "Variant declared in a test or ignored file",
		LoadInfo:               "Load information",
		LoadPackage:            "Package failed to load",
		LoadNoPackages:         "No packages matched",
		LoadTypeErrors:         "Package has type errors",
		LoadMixedOutput:        "Output file shared by several packages",
		IOInfo:                 "Output information",
		IOWriteFailed:          "Failed to write generated file",
		IOStaleOutput:          "Generated file is out of date",
		IOFormat:               "Generated source failed to format",
		ProjInfo:               "Project information",
		ProjManifestInvalid:    "Invalid enumtable.toml",
		ProjUnknownKey:         "Unknown key in enumtable.toml",
		ObsInfo:                "Observability information",
		ObsTimings:             "Generator timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("DRV%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("VAR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LOAD%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
