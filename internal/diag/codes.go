package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// probes
	ProbeInfo              Code = 1000
	ProbePadding           Code = 1001
	ProbeEndianUnknown     Code = 1002
	ProbeEndianMixed       Code = 1003
	ProbeSignedUnknown     Code = 1004
	ProbeNoASCII           Code = 1005
	ProbeLayoutUnknown     Code = 1006
	ProbeSingleValue       Code = 1007
	ProbeOrderMismatch     Code = 1008
	ProbeRuntimeDisagrees  Code = 1009
	ProbeCharWidth         Code = 1010
	ProbeNoLongLong        Code = 1011
	ProbeFeatureDisabled   Code = 1012
	ProbeWidthLimitReached Code = 1013

	// header synthesis
	SynInfo         Code = 2000
	SynOpenFailed   Code = 2001
	SynWriteFailed  Code = 2002
	SynCloseFailed  Code = 2003
	SynSnapshotRead Code = 2004
	SynSnapshotSave Code = 2005

	// configuration
	CfgInfo         Code = 3000
	CfgUnknownKey   Code = 3001
	CfgInvalidValue Code = 3002
	CfgMachine      Code = 3003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		ProbeInfo:              "Probe information",
		ProbePadding:           "Unsigned type has padding bits",
		ProbeEndianUnknown:     "Integer byte order could not be classified",
		ProbeEndianMixed:       "Integer byte order is mixed",
		ProbeSignedUnknown:     "Signed integer representation could not be classified",
		ProbeNoASCII:           "Execution character set is not ASCII",
		ProbeLayoutUnknown:     "Floating-point layout not in catalogue",
		ProbeSingleValue:       "Layout accepted on a single test value",
		ProbeOrderMismatch:     "Floating-point and integer byte orders differ",
		ProbeRuntimeDisagrees:  "Probed byte order disagrees with runtime report",
		ProbeCharWidth:         "Char is not 8 bits wide",
		ProbeNoLongLong:        "unsigned long long unavailable",
		ProbeFeatureDisabled:   "Probe disabled by configuration",
		ProbeWidthLimitReached: "Unsigned type wider than 64 bits",
		SynInfo:                "Synthesis information",
		SynOpenFailed:          "Cannot open output artifact",
		SynWriteFailed:         "Cannot write output artifact",
		SynCloseFailed:         "Cannot close output artifact",
		SynSnapshotRead:        "Cannot read profile snapshot",
		SynSnapshotSave:        "Cannot save profile snapshot",
		CfgInfo:                "Configuration information",
		CfgUnknownKey:          "Unknown configuration key",
		CfgInvalidValue:        "Invalid configuration value",
		CfgMachine:             "Invalid machine description",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("PRB%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CFG%04d", ic)
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
