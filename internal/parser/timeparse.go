package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cwarden/chime/internal/alarm"
)

// ParsedTime is a time-of-day as written, plus any trailing text.
type ParsedTime struct {
	Hour       int // as written: 1-12 when TwelveHour, else 0-23
	Minute     int
	Second     int
	Period     alarm.Period
	TwelveHour bool
	Text       string // Remaining text after parsing time
}

// Alarm converts the parsed time into an alarm labeled with the trailing text.
func (p *ParsedTime) Alarm(now time.Time) alarm.Alarm {
	a := alarm.New(p.Hour, p.Minute, p.Second, p.Period, p.TwelveHour, now)
	a.Label = p.Text
	return a
}

type TimeParser struct {
	now      time.Time
	location *time.Location
}

var (
	clockRe    = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.)?(?:\s|$)`)
	relativeRe = regexp.MustCompile(`^in\s+((?:\d+\s*(?:h|m|s)\s*)+)(?:\s|$)`)
	unitRe     = regexp.MustCompile(`(\d+)\s*(h|m|s)`)
	wordsRe    = regexp.MustCompile(`^in\s+(\d+)\s+(second|seconds|sec|secs|minute|minutes|min|mins|hour|hours)\b`)
)

var namedTimes = []struct {
	name string
	hour int
}{
	{"midnight", 0},
	{"morning", 9},
	{"noon", 12},
	{"afternoon", 14},
	{"evening", 18},
	{"night", 21},
}

func NewTimeParser() *TimeParser {
	return &TimeParser{
		now:      time.Now(),
		location: time.Local,
	}
}

func (p *TimeParser) SetNow(now time.Time) {
	p.now = now
}

// Parse reads a time-of-day from the start of input. Accepted forms:
// "7:30pm", "07:30:15", "19:05", "7 am", "noon", "in 10m", "in 1h30m",
// "in 5 minutes", each optionally prefixed with "at".
func (p *TimeParser) Parse(input string) (*ParsedTime, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	lower := strings.ToLower(input)
	if strings.HasPrefix(lower, "at ") {
		lower = strings.TrimSpace(lower[3:])
		input = strings.TrimSpace(input[3:])
	}

	if result, ok := p.parseRelative(input, lower); ok {
		return result, nil
	}

	if matches := clockRe.FindStringSubmatch(lower); matches != nil {
		return p.parseClock(input, matches)
	}

	for _, named := range namedTimes {
		if lower == named.name || strings.HasPrefix(lower, named.name+" ") {
			return &ParsedTime{
				Hour: named.hour,
				Text: strings.TrimSpace(input[len(named.name):]),
			}, nil
		}
	}

	return nil, fmt.Errorf("unrecognized time: %q", input)
}

func (p *TimeParser) parseClock(input string, matches []string) (*ParsedTime, error) {
	hour, _ := strconv.Atoi(matches[1])
	minute, second := 0, 0
	if matches[2] != "" {
		minute, _ = strconv.Atoi(matches[2])
	}
	if matches[3] != "" {
		second, _ = strconv.Atoi(matches[3])
	}

	result := &ParsedTime{
		Hour:   hour,
		Minute: minute,
		Second: second,
		Text:   strings.TrimSpace(input[len(matches[0]):]),
	}

	switch strings.ReplaceAll(matches[4], ".", "") {
	case "am":
		result.Period = alarm.PeriodAM
		result.TwelveHour = true
	case "pm":
		result.Period = alarm.PeriodPM
		result.TwelveHour = true
	}

	if result.TwelveHour {
		if hour < 1 || hour > 12 {
			return nil, fmt.Errorf("hour %d out of range for %s", hour, result.Period)
		}
	} else if hour > 23 {
		return nil, fmt.Errorf("hour %d out of range", hour)
	}
	if minute > 59 {
		return nil, fmt.Errorf("minute %d out of range", minute)
	}
	if second > 59 {
		return nil, fmt.Errorf("second %d out of range", second)
	}

	return result, nil
}

// parseRelative handles "in 10m", "in 1h30m" and "in 5 minutes", resolving
// them against the parser's clock.
func (p *TimeParser) parseRelative(input, lower string) (*ParsedTime, bool) {
	var (
		offset time.Duration
		n      int
	)

	if matches := wordsRe.FindStringSubmatch(lower); matches != nil {
		count, _ := strconv.Atoi(matches[1])
		unit := matches[2]
		switch {
		case strings.HasPrefix(unit, "h"):
			offset = time.Duration(count) * time.Hour
		case strings.HasPrefix(unit, "m"):
			offset = time.Duration(count) * time.Minute
		default:
			offset = time.Duration(count) * time.Second
		}
		n = len(matches[0])
	} else if matches := relativeRe.FindStringSubmatch(lower); matches != nil {
		for _, part := range unitRe.FindAllStringSubmatch(matches[1], -1) {
			count, _ := strconv.Atoi(part[1])
			switch part[2] {
			case "h":
				offset += time.Duration(count) * time.Hour
			case "m":
				offset += time.Duration(count) * time.Minute
			case "s":
				offset += time.Duration(count) * time.Second
			}
		}
		n = len(matches[0])
	} else {
		return nil, false
	}

	t := p.now.In(p.location).Add(offset)
	return &ParsedTime{
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
		Text:   strings.TrimSpace(input[n:]),
	}, true
}
