package device

import "time"

// fadeFPS is the frame rate fade sequences are rendered at.
const fadeFPS = 25

// Step is one step of a fade waveform: hold the output at Value for Delay.
type Step struct {
	Value float64       `json:"value"`
	Delay time.Duration `json:"delay"`
}

// FadeSequence builds the waveform for one blink cycle of a PWM device: fade
// in, hold on, fade out, hold off. Fades are rendered at 25 steps per second.
// A zero fade time contributes no steps, so with both fades zero the cycle
// degenerates to a plain on/off blink.
//
// The sequence is built once per blink and replayed verbatim every cycle.
func FadeSequence(onTime, offTime, fadeInTime, fadeOutTime time.Duration) []Step {
	frame := time.Second / fadeFPS

	in := int(fadeFPS * fadeInTime.Seconds())
	out := int(fadeFPS * fadeOutTime.Seconds())

	seq := make([]Step, 0, in+out+2)

	for i := 0; i < in; i++ {
		seq = append(seq, Step{Value: float64(i) / (fadeFPS * fadeInTime.Seconds()), Delay: frame})
	}

	seq = append(seq, Step{Value: 1, Delay: onTime})

	for i := 0; i < out; i++ {
		seq = append(seq, Step{Value: 1 - float64(i)/(fadeFPS*fadeOutTime.Seconds()), Delay: frame})
	}

	seq = append(seq, Step{Value: 0, Delay: offTime})

	return seq
}
