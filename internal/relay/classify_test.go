package relay

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		filename string
		want     MediaKind
	}{
		{filename: "photo.jpg", want: MediaImage},
		{filename: "photo.JPEG", want: MediaImage},
		{filename: "sticker.png", want: MediaImage},
		{filename: "anim.gif", want: MediaImage},
		{filename: "song.mp3", want: MediaAudio},
		{filename: "voice.ogg", want: MediaAudio},
		{filename: "memo.m4a", want: MediaAudio},
		{filename: "clip.mp4", want: MediaVideo},
		{filename: "clip.mov", want: MediaVideo},
		{filename: "clip.webm", want: MediaVideo},
		{filename: "notes.txt", want: MediaUnsupported},
		{filename: "archive.zip", want: MediaUnsupported},
		{filename: "noextension", want: MediaUnsupported},
		{filename: "", want: MediaUnsupported},
		{filename: "trailing.", want: MediaUnsupported},
	}

	for _, tc := range cases {
		if got := Classify(tc.filename); got != tc.want {
			t.Errorf("Classify(%q) = %v, want %v", tc.filename, got, tc.want)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	t.Parallel()

	for _, filename := range []string{"photo.jpg", "clip.mp4", "noextension"} {
		first := Classify(filename)
		second := Classify(filename)
		if first != second {
			t.Errorf("Classify(%q) not stable: %v then %v", filename, first, second)
		}
	}
}
