package worklist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Target is one parsed target URL together with the text it was parsed from.
type Target struct {
	URL *url.URL
	Raw string
}

func (t Target) String() string { return t.Raw }

// TargetSet is an ordered, non-empty sequence of targets. Duplicates are kept.
type TargetSet []Target

// RequestSpec is one fully specified request of the work list.
type RequestSpec struct {
	Method string
	Target Target
	// Pass is the zero-based repetition index the spec belongs to.
	Pass int
}

// URL returns the request URL as it is sent on the wire.
func (r RequestSpec) URL() string { return r.Target.URL.String() }

// WorkList is the expanded, ordered request list of a run.
type WorkList []RequestSpec

// ParseTarget parses a direct target URL.
func ParseTarget(raw string) (Target, error) {
	return parseTarget(raw, 0)
}

// FromURL builds a single-entry target set.
func FromURL(raw string) (TargetSet, error) {
	target, err := ParseTarget(raw)
	if err != nil {
		return nil, err
	}
	return TargetSet{target}, nil
}

// FromFile reads a newline-delimited URL list. Every line must parse as an
// absolute URL; the first line that does not stops the read.
func FromFile(path string) (TargetSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceReadError{Path: path, Err: err}
	}
	return Parse(data)
}

// Parse parses newline-delimited URL list content.
func Parse(data []byte) (TargetSet, error) {
	var set TargetSet
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		target, err := parseTarget(strings.TrimSuffix(scanner.Text(), "\r"), line)
		if err != nil {
			return nil, err
		}
		set = append(set, target)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan url list: %w", err)
	}
	if len(set) == 0 {
		return nil, ErrNoTargets
	}
	return set, nil
}

// Build repeats the target set pass by pass. The result has exactly
// len(targets)*repetitions entries.
func Build(targets TargetSet, repetitions int) (WorkList, error) {
	if repetitions < 1 {
		return nil, ErrZeroRepetitions
	}
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	list := make(WorkList, 0, len(targets)*repetitions)
	for pass := 0; pass < repetitions; pass++ {
		for _, target := range targets {
			list = append(list, RequestSpec{
				Method: http.MethodGet,
				Target: target,
				Pass:   pass,
			})
		}
	}
	return list, nil
}

func parseTarget(raw string, line int) (Target, error) {
	if strings.TrimSpace(raw) != raw || raw == "" {
		return Target{}, &ParseError{Input: raw, Line: line, Err: errors.New("empty or padded url")}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, &ParseError{Input: raw, Line: line, Err: unwrapURLError(err)}
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "":
		return Target{}, &ParseError{Input: raw, Line: line, Err: errors.New("missing scheme")}
	default:
		return Target{}, &ParseError{Input: raw, Line: line, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return Target{}, &ParseError{Input: raw, Line: line, Err: errors.New("missing host")}
	}
	return Target{URL: u, Raw: raw}, nil
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
