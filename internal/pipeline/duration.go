package pipeline

import (
	"fmt"
	"time"

	"github.com/apresai/speak/internal/format"
)

const riffHeaderSize = 44

// estimateDuration derives clip length from the byte count for constant
// bitrate formats. Opus and AMR are variable and report false.
func estimateDuration(f format.AudioFormat, n int64) (time.Duration, bool) {
	info, ok := f.Info()
	if !ok || n <= 0 {
		return 0, false
	}

	var bytesPerSec int64
	switch {
	case info.Codec == format.CodecMP3 && info.BitRateKbps > 0:
		bytesPerSec = int64(info.BitRateKbps) * 125
	case (info.Codec == format.CodecPCM || info.Codec == format.CodecALaw || info.Codec == format.CodecMULaw) && info.BitDepth > 0:
		bytesPerSec = int64(info.SampleRate*info.BitDepth/8) * int64(info.Channels)
		if info.Envelope == format.EnvelopeRIFF {
			n -= riffHeaderSize
		}
	default:
		return 0, false
	}
	if n <= 0 || bytesPerSec == 0 {
		return 0, false
	}
	return time.Duration(n * int64(time.Second) / bytesPerSec), true
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
