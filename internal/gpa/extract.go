package gpa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gpacalc/internal/components/assert"
	"gpacalc/internal/components/telemetry"
	"io"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_extract_record  = "extract.record"
	report_extract_skipped = "extract.skipped"
)

var tracer = otel.Tracer("gpacalc/gpa")

// extraction is the outcome of a single array element, a non-nil err means
// the element is skipped.
type extraction struct {
	record CourseRecord
	err    error
}

// Extract parses the student courses response body into course records,
// preserving the order of the array. Elements that don't have the expected
// shape are reported to `tel` and skipped, only a body that isn't a JSON
// array fails the whole batch.
func Extract(ctx context.Context, body string, tel telemetry.API) ([]CourseRecord, error) {
	_, span := tracer.Start(ctx, "gpa:Extract")
	defer span.End()

	assert.NotNil(tel, "gpa: telemetry api")
	tel = telemetry.NewScopedAPI("gpa", tel)

	elements, err := decodeArray(body)
	if err != nil {
		span.SetStatus(codes.Error, "malformed response")
		return nil, err
	}

	results := make([]extraction, len(elements))
	for i, element := range elements {
		record, err := extractRecord(element)
		if err != nil {
			err = &RecordExtractionError{Index: i, Reason: err.Error()}
		}
		results[i] = extraction{record: record, err: err}
	}

	records := make([]CourseRecord, 0, len(results))
	skipped := 0
	for _, result := range results {
		if result.err != nil {
			tel.ReportWarning(report_extract_record, result.err)
			skipped++
			continue
		}
		records = append(records, result.record)
	}
	if skipped > 0 {
		tel.ReportCount(report_extract_skipped, int64(skipped))
	}

	span.SetAttributes(
		attribute.Int("elements", len(elements)),
		attribute.Int("records", len(records)),
		attribute.Int("skipped", skipped),
	)
	return records, nil
}

func decodeArray(body string) ([]any, error) {
	decoder := json.NewDecoder(strings.NewReader(body))
	decoder.UseNumber()

	var root any
	err := decoder.Decode(&root)
	if err != nil {
		return nil, &MalformedResponseError{Kind: "invalid json", Err: err}
	}
	var trailing any
	err = decoder.Decode(&trailing)
	if !errors.Is(err, io.EOF) {
		return nil, &MalformedResponseError{
			Kind: "invalid json",
			Err:  errors.New("unexpected data after top-level value"),
		}
	}

	elements, ok := root.([]any)
	if !ok {
		return nil, &MalformedResponseError{Kind: jsonKind(root)}
	}
	return elements, nil
}

func jsonKind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", value)
}

func extractRecord(element any) (CourseRecord, error) {
	object, ok := element.(map[string]any)
	if !ok {
		return CourseRecord{}, fmt.Errorf("expected object but got %s", jsonKind(element))
	}

	points, err := extractPoints(object)
	if err != nil {
		return CourseRecord{}, err
	}
	hours, err := extractHours(object)
	if err != nil {
		return CourseRecord{}, err
	}

	return CourseRecord{Points: points, Hours: hours}, nil
}

// a missing or null `points` is 0, anything that isn't a number is an error
func extractPoints(object map[string]any) (float64, error) {
	value, ok := object["points"]
	if !ok || value == nil {
		return 0, nil
	}
	number, ok := value.(json.Number)
	if !ok {
		return 0, fmt.Errorf("points: expected number but got %s", jsonKind(value))
	}
	points, err := number.Float64()
	if err != nil {
		return 0, fmt.Errorf("points: %w", err)
	}
	return points, nil
}

// a missing or non-numeric `course.numOfHours` is 0, a negative value or one
// that doesn't fit an int32 (1e400 included) is an error
func extractHours(object map[string]any) (int, error) {
	course, ok := object["course"].(map[string]any)
	if !ok {
		return 0, nil
	}
	number, ok := course["numOfHours"].(json.Number)
	if !ok {
		return 0, nil
	}
	// overflow parses as ±Inf with ErrRange, the bounds below classify it
	value, err := number.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("course.numOfHours: %w", err)
	}

	value = math.Trunc(value)
	if value < 0 {
		return 0, fmt.Errorf("course.numOfHours: negative value %s", number.String())
	}
	if value > math.MaxInt32 {
		return 0, fmt.Errorf("course.numOfHours: value %s out of range", number.String())
	}
	return int(value), nil
}
