package shadowdark

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/shadowsheet/internal/game/character"
)

// Legacy talent text encoding.
//
// Older sheets stored a talent only as display text built from its bonus record, and the
// generator format still needs a bonus record per talent. DescribeBonus builds that text and
// ParseBonusDescription reads it back. The round trip is lossy: the name fields,
// sourceCategory and any segment other than the ones below do not survive.

const segmentSeparator = " | "

// Recognized description segment prefixes.
const (
	prefixBonusTo = "Bonus to: "
	prefixLevel   = "Level "
	prefixAmount  = "+"
)

// sourceTypes are the "{sourceType}: {sourceName}" segments ParseBonusDescription understands.
var sourceTypes = []string{"Class", "Ancestry"}

// Degraded record values for descriptions that do not follow the legacy shape.
const (
	OtherSourceType = "Other"
	UnknownSource   = "Unknown"
)

// DescribeBonus renders b as display text. Present fields are emitted in a fixed order,
// "{sourceType}: {sourceName}", "Bonus to: {bonusTo}", "+{bonusAmount}", "Level {gainedAtLevel}",
// joined by " | ". Absent fields are skipped.
func DescribeBonus(b character.BonusRecord) string {
	var parts []string
	if b.SourceType != "" && b.SourceName != "" {
		parts = append(parts, b.SourceType+": "+b.SourceName)
	}
	if b.BonusTo != "" {
		parts = append(parts, prefixBonusTo+b.BonusTo)
	}
	if b.BonusAmount != nil {
		parts = append(parts, fmt.Sprintf("%s%d", prefixAmount, *b.BonusAmount))
	}
	if b.GainedAtLevel != nil {
		parts = append(parts, fmt.Sprintf("%s%d", prefixLevel, *b.GainedAtLevel))
	}
	return strings.Join(parts, segmentSeparator)
}

// ParseBonusDescription recovers a bonus record from text produced by DescribeBonus.
//
// Postcondition: ok is true only when every segment of desc was recognized. Otherwise the
// result is a degraded record with SourceType "Other", SourceName "Unknown" and
// GainedAtLevel 1, named after name (or desc when name is empty).
func ParseBonusDescription(name, desc string) (rec character.BonusRecord, ok bool) {
	if rec, ok := parseSegments(desc); ok {
		rec.Name = name
		rec.BonusName = name
		return rec, true
	}
	label := strings.TrimSpace(name)
	if label == "" {
		label = strings.TrimSpace(desc)
	}
	level := 1
	return character.BonusRecord{
		Name:          label,
		BonusName:     label,
		SourceType:    OtherSourceType,
		SourceName:    UnknownSource,
		GainedAtLevel: &level,
	}, false
}

func parseSegments(desc string) (character.BonusRecord, bool) {
	var rec character.BonusRecord
	if strings.TrimSpace(desc) == "" {
		return rec, false
	}
	for _, seg := range strings.Split(desc, segmentSeparator) {
		seg = strings.TrimSpace(seg)
		switch {
		case strings.HasPrefix(seg, prefixBonusTo):
			rec.BonusTo = strings.TrimPrefix(seg, prefixBonusTo)
		case strings.HasPrefix(seg, prefixLevel):
			n, err := strconv.Atoi(strings.TrimPrefix(seg, prefixLevel))
			if err != nil {
				return rec, false
			}
			rec.GainedAtLevel = &n
		case strings.HasPrefix(seg, prefixAmount):
			n, err := strconv.Atoi(strings.TrimPrefix(seg, prefixAmount))
			if err != nil {
				return rec, false
			}
			rec.BonusAmount = &n
		default:
			st, sn, found := parseSource(seg)
			if !found {
				return rec, false
			}
			rec.SourceType, rec.SourceName = st, sn
		}
	}
	return rec, true
}

func parseSource(seg string) (sourceType, sourceName string, ok bool) {
	for _, st := range sourceTypes {
		if name, found := strings.CutPrefix(seg, st+": "); found && name != "" {
			return st, name, true
		}
	}
	return "", "", false
}
