package model

import (
	"strings"
	"unicode/utf8"
)

// DaysPerWeek is the number of entries in a ClassTime. Index 0 is Monday.
const DaysPerWeek = 7

// SlotOrder lists the slot codes chronologically, from the pre-class period
// through the evening periods.
const SlotOrder = "A1234B56789CDEF"

// SlotCount is the number of distinct slot codes.
const SlotCount = len(SlotOrder)

var DayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ClassTime holds, per weekday, the concatenated slot codes a section meets in.
// An empty string means no meeting that day.
type ClassTime [DaysPerWeek]string

// Cell is one (day, slot) position of the weekly grid.
type Cell struct {
	Day  int
	Slot rune
}

// SlotIndex returns the chronological position of code, or -1 for anything
// that is not a slot code.
func SlotIndex(code rune) int {
	if code >= utf8.RuneSelf {
		return -1
	}
	return strings.IndexRune(SlotOrder, code)
}

func IsSlotCode(code rune) bool {
	return SlotIndex(code) >= 0
}

// ValidDay reports whether day is a ClassTime index.
func ValidDay(day int) bool {
	return day >= 0 && day < DaysPerWeek
}

// Hours counts one weekly contact hour per slot code.
func (ct ClassTime) Hours() int {
	hours := 0
	for _, day := range ct {
		hours += utf8.RuneCountInString(day)
	}
	return hours
}

// IsEmpty reports whether the section has no meetings at all.
func (ct ClassTime) IsEmpty() bool {
	for _, day := range ct {
		if day != "" {
			return false
		}
	}
	return true
}

// Occupies reports whether the section meets in the given cell.
func (ct ClassTime) Occupies(day int, slot rune) bool {
	if !ValidDay(day) {
		return false
	}
	return strings.ContainsRune(ct[day], slot)
}

// Cells lists every occupied cell, days in order and slots in the order they
// appear in the day string. Repeated codes are reported once.
func (ct ClassTime) Cells() []Cell {
	var cells []Cell
	for day, codes := range ct {
		seen := map[rune]bool{}
		for _, code := range codes {
			if seen[code] {
				continue
			}
			seen[code] = true
			cells = append(cells, Cell{Day: day, Slot: code})
		}
	}
	return cells
}

// SortedSlots returns the day's codes in chronological order; unknown codes
// are dropped.
func (ct ClassTime) SortedSlots(day int) []rune {
	if !ValidDay(day) {
		return nil
	}
	var slots []rune
	for _, code := range SlotOrder {
		if strings.ContainsRune(ct[day], code) {
			slots = append(slots, code)
		}
	}
	return slots
}
