package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	typingDelay  = 50 * time.Millisecond
	sectionPause = time.Second
)

// presenter prints the welcome banner with a typewriter effect. With a nil
// sleep function the banner is printed without delays.
type presenter struct {
	out    io.Writer
	styles styles
	sleep  func(time.Duration)
}

func newPresenter(out io.Writer, styles styles, animate bool) *presenter {
	p := &presenter{out: out, styles: styles}
	if animate {
		p.sleep = time.Sleep
	}
	return p
}

func (p *presenter) Welcome() error {
	steps := []func() error{
		func() error { return p.write("\n") },
		func() error { return p.animate("General Master Quiz? ", &p.styles.title) },
		func() error { return p.write("\n") },
		p.pause,
		func() error { return p.write("\n\n") },
		func() error { return p.animate("HOW TO PLAY", &p.styles.heading) },
		func() error { return p.write("\n") },
		p.pause,
		func() error { return p.animate("I am a process on your computer.\n", nil) },
		func() error { return p.animate("If you get any question wrong I will be ", nil) },
		func() error { return p.write(p.styles.danger.Render("killed") + "\n") },
		func() error { return p.animate("So get all the questions right...\n\n", nil) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// animate writes text one rune at a time, waiting typingDelay before each.
func (p *presenter) animate(text string, style *lipgloss.Style) error {
	for _, r := range text {
		if p.sleep != nil {
			p.sleep(typingDelay)
		}
		chunk := string(r)
		if style != nil && r != '\n' {
			chunk = style.Render(chunk)
		}
		if err := p.write(chunk); err != nil {
			return err
		}
	}
	return nil
}

func (p *presenter) pause() error {
	if p.sleep != nil {
		p.sleep(sectionPause)
	}
	return nil
}

func (p *presenter) write(text string) error {
	_, err := io.WriteString(p.out, text)
	return err
}
