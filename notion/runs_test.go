package notion

import (
	"reflect"
	"testing"

	"github.com/danielegts/enex2notion/enex"
)

func TestMergeRuns(t *testing.T) {
	bold := RunProps{Bold: true}

	tests := []struct {
		name string
		in   []TextRun
		want []TextRun
	}{
		{
			name: "empty input yields single empty run",
			in:   nil,
			want: []TextRun{{}},
		},
		{
			name: "adjacent identical props merge",
			in:   []TextRun{{Text: "a", Props: bold}, {Text: "b", Props: bold}},
			want: []TextRun{{Text: "ab", Props: bold}},
		},
		{
			name: "differing props stay separate",
			in:   []TextRun{{Text: "a", Props: bold}, {Text: "b"}},
			want: []TextRun{{Text: "a", Props: bold}, {Text: "b"}},
		},
		{
			name: "empty fragments dropped",
			in:   []TextRun{{Text: "a"}, {Text: ""}, {Text: "b"}},
			want: []TextRun{{Text: "ab"}},
		},
		{
			name: "only empty fragments yield single empty run",
			in:   []TextRun{{Text: ""}, {Text: "", Props: bold}},
			want: []TextRun{{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeRuns(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergeRuns() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewResourceBlockVariants(t *testing.T) {
	tests := []struct {
		mime string
		want BlockType
	}{
		{"image/png", BlockImage},
		{"video/mp4", BlockVideo},
		{"audio/mpeg", BlockAudio},
		{"application/pdf", BlockPDF},
		{"application/zip", BlockFile},
	}
	for _, tt := range tests {
		b := NewResourceBlock(&enex.Resource{Mime: tt.mime})
		if b.Type != tt.want {
			t.Errorf("mime %q: got %s, want %s", tt.mime, b.Type, tt.want)
		}
	}
}
