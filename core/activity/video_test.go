package activity

import "testing"

func TestClassifyVideoURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantID  string
		wantHit bool
	}{
		{name: "watch link", url: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", wantID: "dQw4w9WgXcQ", wantHit: true},
		{name: "watch link with extra params", url: "https://www.youtube.com/watch?v=abc123&t=42s", wantID: "abc123", wantHit: true},
		{name: "short link", url: "https://youtu.be/abc123", wantID: "abc123", wantHit: true},
		{name: "short link with query", url: "https://youtu.be/abc123?si=share", wantID: "abc123", wantHit: true},
		{name: "embed link", url: "https://www.youtube.com/embed/xyz789", wantID: "xyz789", wantHit: true},
		{name: "embed link with query", url: "https://www.youtube.com/embed/xyz789?autoplay=1", wantID: "xyz789", wantHit: true},
		{name: "mobile link", url: "https://m.youtube.com/watch?v=mob001", wantID: "mob001", wantHit: true},
		{name: "channel page", url: "https://www.youtube.com/c/somechannel"},
		{name: "other platform", url: "https://vimeo.com/123456"},
		{name: "plain site", url: "https://www.example.com"},
		{name: "empty", url: ""},
		{name: "malformed", url: "::not a url::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := ClassifyVideoURL(tt.url)
			if ok != tt.wantHit {
				t.Fatalf("ClassifyVideoURL(%q) ok = %v, want %v", tt.url, ok, tt.wantHit)
			}
			if !tt.wantHit {
				if ref != (VideoRef{}) {
					t.Errorf("ClassifyVideoURL(%q) ref = %+v, want zero", tt.url, ref)
				}
				return
			}
			if ref.Platform != PlatformYouTube {
				t.Errorf("ClassifyVideoURL(%q) platform = %q, want %q", tt.url, ref.Platform, PlatformYouTube)
			}
			if ref.VideoID != tt.wantID {
				t.Errorf("ClassifyVideoURL(%q) id = %q, want %q", tt.url, ref.VideoID, tt.wantID)
			}
			wantEmbed := "https://www.youtube.com/embed/" + tt.wantID
			if ref.EmbedURL != wantEmbed {
				t.Errorf("ClassifyVideoURL(%q) embed = %q, want %q", tt.url, ref.EmbedURL, wantEmbed)
			}
		})
	}
}

func TestClassifyVideoURL_deterministic(t *testing.T) {
	url := "https://youtu.be/abc123"
	first, ok := ClassifyVideoURL(url)
	if !ok {
		t.Fatalf("ClassifyVideoURL(%q) no match", url)
	}
	for i := 0; i < 3; i++ {
		again, _ := ClassifyVideoURL(url)
		if again != first {
			t.Fatalf("ClassifyVideoURL(%q) not deterministic: %+v != %+v", url, again, first)
		}
	}
}
