package bounded_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ghuser/boundedstr/pkg/bounded"
)

type myModel struct {
	Name NameField `json:"name" yaml:"name" toml:"name"`
}

func TestJSON_Decode(t *testing.T) {
	var m myModel
	if err := json.Unmarshal([]byte(`{"name": "morethantencharacters"}`), &m); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if m.Name.String() != "morethantencharacters" {
		t.Fatalf("expected %q, got %q", "morethantencharacters", m.Name.String())
	}
}

func TestJSON_Encode(t *testing.T) {
	name, err := bounded.New[nameBounds]("morethantencharacters")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	data, err := json.Marshal(myModel{Name: name})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	if string(data) != `{"name":"morethantencharacters"}` {
		t.Fatalf("unexpected JSON: %s", data)
	}
}

func TestJSON_DecodeLengthViolation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"too short", `{"name":"abc"}`, "json: length of value 3 shorter than 10"},
		{"empty", `{"name":""}`, "json: length of value 0 shorter than 10"},
		{"too long", `{"name":"` + strings.Repeat("z", 101) + `"}`, "json: length of value 101 longer than 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m myModel
			err := json.Unmarshal([]byte(tt.body), &m)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var de *bounded.DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %T: %v", err, err)
			}
			if de.Format != bounded.FormatJSON {
				t.Fatalf("expected format %q, got %q", bounded.FormatJSON, de.Format)
			}
			if !errors.Is(err, bounded.ErrInvalidLength) {
				t.Fatal("expected errors.Is(err, ErrInvalidLength)")
			}
			if err.Error() != tt.message {
				t.Fatalf("unexpected message: %q", err.Error())
			}
			if !m.Name.IsZero() {
				t.Fatalf("expected field to stay zero, got %q", m.Name.String())
			}
		})
	}
}

func TestJSON_DecodeNonString(t *testing.T) {
	for _, body := range []string{
		`{"name": 42}`,
		`{"name": true}`,
		`{"name": null}`,
		`{"name": ["morethantencharacters"]}`,
		`{"name": {"v": "morethantencharacters"}}`,
	} {
		t.Run(body, func(t *testing.T) {
			var m myModel
			err := json.Unmarshal([]byte(body), &m)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var de *bounded.DecodeError
			if errors.As(err, &de) {
				t.Fatalf("expected a type error, got length error: %v", err)
			}
			if errors.Is(err, bounded.ErrInvalidLength) {
				t.Fatalf("type mismatch must not match ErrInvalidLength: %v", err)
			}
		})
	}
}

func TestJSON_NullPointerField(t *testing.T) {
	var m struct {
		Name *NameField `json:"name"`
	}
	if err := json.Unmarshal([]byte(`{"name": null}`), &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != nil {
		t.Fatalf("expected nil pointer, got %q", m.Name.String())
	}
}

func TestDecodeConstructEquivalence(t *testing.T) {
	inputs := []string{
		"",
		"short",
		strings.Repeat("a", 9),
		strings.Repeat("a", 10),
		"morethantencharacters",
		strings.Repeat("b", 100),
		strings.Repeat("b", 101),
		"quote \" and \\ backslash",
	}

	for _, in := range inputs {
		direct, constructErr := bounded.New[nameBounds](in)

		payload, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("json.Marshal(%q): %v", in, err)
		}
		var decoded NameField
		decodeErr := json.Unmarshal(payload, &decoded)

		if (constructErr == nil) != (decodeErr == nil) {
			t.Fatalf("%q: New err = %v, decode err = %v", in, constructErr, decodeErr)
		}
		if constructErr != nil {
			if !strings.HasSuffix(decodeErr.Error(), constructErr.Error()) {
				t.Fatalf("%q: decode message %q does not carry %q", in, decodeErr, constructErr)
			}
			continue
		}
		if decoded != direct {
			t.Fatalf("%q: decoded %q != constructed %q", in, decoded.String(), direct.String())
		}
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	for _, in := range []string{
		strings.Repeat("a", 10),
		"morethantencharacters",
		"<html> & \"quotes\" ünïcödé",
		strings.Repeat("z", 100),
	} {
		v := bounded.MustNew[nameBounds](in)
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		var back NameField
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("json.Unmarshal(%s): %v", data, err)
		}
		if back.String() != in {
			t.Fatalf("round trip: want %q, got %q", in, back.String())
		}
	}
}

func TestText(t *testing.T) {
	var v NameField
	if err := v.UnmarshalText([]byte("morethantencharacters")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	out, err := v.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(out) != "morethantencharacters" {
		t.Fatalf("unexpected text: %q", out)
	}

	err = v.UnmarshalText([]byte("tiny"))
	var de *bounded.DecodeError
	if !errors.As(err, &de) || de.Format != bounded.FormatText {
		t.Fatalf("expected text DecodeError, got %v", err)
	}
	if v.String() != "morethantencharacters" {
		t.Fatalf("failed decode must not modify receiver, got %q", v.String())
	}
}

func TestYAML(t *testing.T) {
	t.Run("decode and encode", func(t *testing.T) {
		var m myModel
		if err := yaml.Unmarshal([]byte("name: morethantencharacters\n"), &m); err != nil {
			t.Fatalf("yaml.Unmarshal: %v", err)
		}
		if m.Name.String() != "morethantencharacters" {
			t.Fatalf("unexpected name: %q", m.Name.String())
		}
		out, err := yaml.Marshal(m)
		if err != nil {
			t.Fatalf("yaml.Marshal: %v", err)
		}
		if string(out) != "name: morethantencharacters\n" {
			t.Fatalf("unexpected YAML: %q", out)
		}
	})

	t.Run("too short", func(t *testing.T) {
		var m myModel
		err := yaml.Unmarshal([]byte("name: abc\n"), &m)
		var de *bounded.DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("expected *DecodeError, got %T: %v", err, err)
		}
		if err.Error() != "yaml: length of value 3 shorter than 10" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})

	t.Run("non-string scalar", func(t *testing.T) {
		var m myModel
		err := yaml.Unmarshal([]byte("name: 123456789012\n"), &m)
		var te *yaml.TypeError
		if !errors.As(err, &te) {
			t.Fatalf("expected *yaml.TypeError, got %T: %v", err, err)
		}
		if !strings.Contains(err.Error(), "at least 10 and at most 100") {
			t.Fatalf("expected bounds in message, got %q", err.Error())
		}
	})

	t.Run("quoted number is a string", func(t *testing.T) {
		var m myModel
		if err := yaml.Unmarshal([]byte("name: \"123456789012\"\n"), &m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Name.String() != "123456789012" {
			t.Fatalf("unexpected name: %q", m.Name.String())
		}
	})

	t.Run("sequence", func(t *testing.T) {
		var m myModel
		err := yaml.Unmarshal([]byte("name:\n  - morethantencharacters\n"), &m)
		var te *yaml.TypeError
		if !errors.As(err, &te) {
			t.Fatalf("expected *yaml.TypeError, got %T: %v", err, err)
		}
	})
}

func TestTOML(t *testing.T) {
	t.Run("decode and encode", func(t *testing.T) {
		var m myModel
		if _, err := toml.Decode(`name = "morethantencharacters"`, &m); err != nil {
			t.Fatalf("toml.Decode: %v", err)
		}
		if m.Name.String() != "morethantencharacters" {
			t.Fatalf("unexpected name: %q", m.Name.String())
		}

		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(m); err != nil {
			t.Fatalf("toml encode: %v", err)
		}
		if strings.TrimSpace(sb.String()) != `name = "morethantencharacters"` {
			t.Fatalf("unexpected TOML: %q", sb.String())
		}
	})

	t.Run("too long", func(t *testing.T) {
		var m myModel
		_, err := toml.Decode(`name = "`+strings.Repeat("y", 101)+`"`, &m)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "length of value 101 longer than 100") {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})

	t.Run("non-string", func(t *testing.T) {
		var v NameField
		err := v.UnmarshalTOML(int64(7))
		var te *bounded.TypeError
		if !errors.As(err, &te) {
			t.Fatalf("expected *TypeError, got %T: %v", err, err)
		}
		if err.Error() != "toml: expected a string with length at least 10 and at most 100, got int64" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})
}

// Every value New accepts must survive an encode/decode cycle in every format.
func TestRoundTrip_AllAcceptedValues(t *testing.T) {
	inputs := []string{
		strings.Repeat("a", 10),
		"tab\tand\nnewline",
		"ünïcödé ✓ – “quotes”",
		strings.Repeat("é", 50),
		"   separators",
		strings.Repeat("\xff", 40),
		"abcdefghij\xc3",
	}
	for _, in := range inputs {
		v, err := bounded.New[nameBounds](in)
		if err != nil {
			continue
		}

		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("json.Marshal(%q): %v", in, err)
		}
		var back NameField
		if err := json.Unmarshal(data, &back); err != nil || back != v {
			t.Fatalf("json round trip of %q: got %q, err %v", in, back.String(), err)
		}

		out, err := yaml.Marshal(myModel{Name: v})
		if err != nil {
			t.Fatalf("yaml.Marshal(%q): %v", in, err)
		}
		var m myModel
		if err := yaml.Unmarshal(out, &m); err != nil || m.Name != v {
			t.Fatalf("yaml round trip of %q: got %q, err %v", in, m.Name.String(), err)
		}
	}
}

func TestDecode_InvalidUTF8(t *testing.T) {
	var v NameField
	for name, decode := range map[string]func() error{
		"text": func() error { return v.UnmarshalText([]byte(strings.Repeat("\xff", 40))) },
		"sql":  func() error { return v.Scan([]byte(strings.Repeat("\xfe", 12))) },
	} {
		t.Run(name, func(t *testing.T) {
			err := decode()
			var de *bounded.DecodeError
			if !errors.As(err, &de) || !errors.Is(err, bounded.ErrInvalidUTF8) {
				t.Fatalf("expected DecodeError wrapping ErrInvalidUTF8, got %v", err)
			}
			if !v.IsZero() {
				t.Fatalf("receiver modified: %q", v.String())
			}
		})
	}
}
