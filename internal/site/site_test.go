package site

import "testing"

func TestByName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "youtube", in: "youtube", want: "youtube"},
		{name: "bugs", in: "bugs", want: "bugs"},
		{name: "case insensitive", in: "YouTube", want: "youtube"},
		{name: "surrounding space", in: " bugs ", want: "bugs"},
		{name: "unknown", in: "spotify", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p, err := ByName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ByName(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ByName(%q) error = %v", tt.in, err)
			}
			if p.Name != tt.want {
				t.Fatalf("ByName(%q).Name = %q, want %q", tt.in, p.Name, tt.want)
			}
		})
	}
}

func TestProfileShapes(t *testing.T) {
	t.Parallel()

	if YouTube.SwitchWindow || YouTube.DismissSelector != "" || YouTube.PlaySelector != "" {
		t.Fatalf("youtube profile should only open and click a result: %+v", YouTube)
	}
	if YouTube.MediaTag != "video" {
		t.Fatalf("youtube media tag = %q, want video", YouTube.MediaTag)
	}

	if !Bugs.SwitchWindow || Bugs.DismissSelector == "" || Bugs.PlaySelector == "" {
		t.Fatalf("bugs profile should carry switch, dismiss and play stages: %+v", Bugs)
	}
	if Bugs.MediaTag != "audio" {
		t.Fatalf("bugs media tag = %q, want audio", Bugs.MediaTag)
	}

	for _, p := range []Profile{YouTube, Bugs} {
		if p.SearchEndpoint == "" || p.QueryParam == "" {
			t.Fatalf("%s profile missing search endpoint or query param", p.Name)
		}
	}
}
