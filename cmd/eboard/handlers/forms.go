package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/kimhsiao/eboard/internal/errors"
	"github.com/kimhsiao/eboard/internal/models"
	"github.com/kimhsiao/eboard/internal/timez"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// form is the decoded input of a request. Keys that are absent stay nil in
// the update records built from it; unknown keys are ignored.
type form struct {
	values url.Values
	loc    *time.Location
}

// readForm decodes the request body. URL-encoded bodies are the default;
// JSON objects are accepted too and flattened to strings. Query parameters
// fill in keys the body does not set. Times are read in loc.
func readForm(w http.ResponseWriter, r *http.Request, loc *time.Location) (form, error) {
	values := url.Values{}
	for k, v := range r.URL.Query() {
		values[k] = v
	}
	if loc == nil {
		loc = time.UTC
	}

	if r.Body == nil || r.Body == http.NoBody {
		return form{values: values, loc: loc}, nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return form{}, apperrors.Invalid("body", "request body too large")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return form{values: values, loc: loc}, nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var parsed url.Values
	if mediaType == "application/json" {
		parsed, err = jsonValues(body)
	} else {
		parsed, err = url.ParseQuery(string(body))
	}
	if err != nil {
		return form{}, apperrors.Invalid("body", "malformed request body")
	}
	for k, v := range parsed {
		values[k] = v
	}
	return form{values: values, loc: loc}, nil
}

// jsonValues flattens a JSON object into form values.
func jsonValues(body []byte) (url.Values, error) {
	var object map[string]interface{}
	if err := json.Unmarshal(body, &object); err != nil {
		return nil, err
	}
	values := url.Values{}
	for k, v := range object {
		switch v := v.(type) {
		case nil:
		case []interface{}:
			values[k] = make([]string, 0, len(v))
			for _, elem := range v {
				values[k] = append(values[k], jsonScalar(elem))
			}
		default:
			values.Set(k, jsonScalar(v))
		}
	}
	return values, nil
}

func jsonScalar(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func (f form) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

func (f form) get(key string) string {
	return f.values.Get(key)
}

func (f form) optString(key string) *string {
	if !f.has(key) {
		return nil
	}
	v := f.get(key)
	return &v
}

// parseBool accepts T, TRUE, Y and YES in any case as true; anything else
// is false.
func parseBool(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "T", "TRUE", "Y", "YES":
		return true
	}
	return false
}

func (f form) optBool(key string) *bool {
	if !f.has(key) {
		return nil
	}
	v := parseBool(f.get(key))
	return &v
}

func (f form) boolOr(key string, def bool) bool {
	if v := f.optBool(key); v != nil {
		return *v
	}
	return def
}

func (f form) optInt(key string) (*int, error) {
	if !f.has(key) {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(f.get(key)))
	if err != nil {
		return nil, apperrors.Invalid(key, "must be an integer")
	}
	return &n, nil
}

func (f form) intOr(key string, def int) (int, error) {
	n, err := f.optInt(key)
	if err != nil || n == nil {
		return def, err
	}
	return *n, nil
}

// optTime parses key with parse in the form's zone. An empty value counts
// as absent so that required-field checks downstream report it.
func (f form) optTime(key string, parse func(string, *time.Location) (time.Time, error)) (*time.Time, error) {
	s := strings.TrimSpace(f.get(key))
	if s == "" {
		return nil, nil
	}
	t, err := parse(s, f.loc)
	if err != nil {
		return nil, apperrors.Invalid(key, err.Error())
	}
	return &t, nil
}

// deadline reads a required "YYYY-MM-DD HH:MM" field.
func (f form) deadline(key string) (time.Time, error) {
	t, err := f.optTime(key, timez.ParseShort)
	if err != nil || t == nil {
		return time.Time{}, err
	}
	return *t, nil
}

// optTags reads the tags field: a single comma separated string or a
// repeated list of names.
func (f form) optTags() *[]string {
	raw, ok := f.values["tags"]
	if !ok {
		return nil
	}
	var names []string
	if len(raw) == 1 {
		names = models.SplitTags(raw[0])
	} else {
		names = models.NormalizeTagNames(raw)
	}
	return &names
}

func (f form) tags() []string {
	if t := f.optTags(); t != nil {
		return *t
	}
	return nil
}
