/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package xcontent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string
	Note  *string
	Count int64
	On    bool
	Tags  []string
	Attrs map[string]string
	Child *entry
}

func (e *entry) ToDocument(b *Builder) {
	b.StartObject().
		StringField("name", e.Name).
		FieldIfNotNull("note", e.Note).
		LongField("count", e.Count).
		BoolField("on", e.On).
		StringListField("tags", e.Tags).
		StringMapField("attrs", e.Attrs)
	ObjectIfNotNull(b, "child", e.Child)
	b.EndObject()
}

func parseEntry(p *Parser) (*entry, error) {
	e := &entry{}
	err := p.Object(func(field string) error {
		var err error
		switch field {
		case "name":
			e.Name, err = p.TextOrEmpty()
		case "note":
			e.Note, err = p.TextOrNil()
		case "count":
			e.Count, err = p.Long()
		case "on":
			e.On, err = p.Bool()
		case "tags":
			e.Tags, err = StringList(p)
		case "attrs":
			e.Attrs, err = StringMap(p)
		case "child":
			e.Child, err = parseEntry(p)
		default:
			return p.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

func TestBuilderCompact(t *testing.T) {
	note := "n"
	e := &entry{
		Name:  "a\"b",
		Note:  &note,
		Count: -3,
		On:    true,
		Tags:  []string{"x", "y"},
		Attrs: map[string]string{"z": "1", "a": "2"},
		Child: &entry{Name: "c", Tags: []string{}, Attrs: map[string]string{}},
	}
	doc, err := Marshal(e, false)
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"a\"b","note":"n","count":-3,"on":true,"tags":["x","y"],"attrs":{"a":"2","z":"1"},`+
			`"child":{"name":"c","count":0,"on":false,"tags":[],"attrs":{}}}`,
		string(doc))
}

func TestBuilderPretty(t *testing.T) {
	doc, err := Marshal(&entry{Name: "p"}, true)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "\n  \"name\": \"p\"")
	assert.JSONEq(t, `{"name":"p","count":0,"on":false,"tags":[],"attrs":{}}`, string(doc))
}

func TestBuilderUnbalanced(t *testing.T) {
	b := NewBuilder(false).StartObject().Field("list").StartArray()
	_, err := b.Bytes()
	assert.ErrorContains(t, err, "2 containers left open")
}

func TestBuilderHTMLNotEscaped(t *testing.T) {
	doc, err := Marshal(&entry{Name: "<b>&</b>"}, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), `{"name":"<b>&</b>"`))
}

func TestParseRoundTrip(t *testing.T) {
	note := "n"
	in := &entry{
		Name:  "root",
		Note:  &note,
		Count: 1 << 40,
		Tags:  []string{"t"},
		Attrs: map[string]string{"k": "v"},
		Child: &entry{Name: "leaf", Tags: []string{}, Attrs: map[string]string{}},
	}
	doc, err := Marshal(in, false)
	require.NoError(t, err)

	out, err := Unmarshal(doc, parseEntry)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseSkipsUnknownFields(t *testing.T) {
	doc := `{"extra":{"deep":[1,{"x":null},"s"]},"name":"kept","more":[[],{}],"flag":false}`
	e, err := Unmarshal([]byte(doc), parseEntry)
	require.NoError(t, err)
	assert.Equal(t, "kept", e.Name)
}

func TestParseLastFieldWins(t *testing.T) {
	e, err := Unmarshal([]byte(`{"name":"first","name":"second"}`), parseEntry)
	require.NoError(t, err)
	assert.Equal(t, "second", e.Name)
}

func TestParseNulls(t *testing.T) {
	e, err := Unmarshal([]byte(`{"name":null,"note":null}`), parseEntry)
	require.NoError(t, err)
	assert.Equal(t, "", e.Name)
	assert.Nil(t, e.Note)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bare string", `"sample message"`},
		{"array at top", `[]`},
		{"wrong field type", `{"name":5}`},
		{"fractional long", `{"count":1.5}`},
		{"string for bool", `{"on":"true"}`},
		{"non-string list item", `{"tags":["a",1]}`},
		{"non-string map value", `{"attrs":{"a":{}}}`},
		{"truncated", `{"name":"x"`},
		{"trailing value", `{"name":"x"} {}`},
		{"empty", ``},
		{"invalid utf-8", "{\"name\":\"a\xffb\"}"},
		{"invalid utf-8 map value", "{\"attrs\":{\"a\":\"\xc3\"}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.doc), parseEntry)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseTrailingWhitespace(t *testing.T) {
	_, err := Unmarshal([]byte("{\"name\":\"x\"}\n\t "), parseEntry)
	assert.NoError(t, err)
}

func TestObjectList(t *testing.T) {
	list, err := Unmarshal([]byte(`[{"name":"a"},{"name":"b"}]`), func(p *Parser) ([]*entry, error) {
		return ObjectList(p, parseEntry)
	})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[1].Name)

	empty, err := Unmarshal([]byte(`[]`), StringList)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestNewParserFrom(t *testing.T) {
	p := NewParserFrom(strings.NewReader(`{"name":"streamed","count":7}`), 4)
	e, err := parseEntry(p)
	require.NoError(t, err)
	assert.Equal(t, "streamed", e.Name)
	assert.Equal(t, int64(7), e.Count)
	assert.NoError(t, p.End())
}
