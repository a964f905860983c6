package utils

import (
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/dpms"
	"github.com/jezek/xgb/xproto"
)

var (
	XConn *xgb.Conn
	XRoot xproto.Window
)

func InitX11() error {
	var err error
	XConn, err = xgb.NewConn()
	if err != nil {
		return err
	}

	setup := xproto.Setup(XConn)
	XRoot = setup.DefaultScreen(XConn).Root
	return nil
}

// PokeInterval is how often the screensaver timer is reset while held.
const PokeInterval = 30 * time.Second

// SleepInhibitor keeps the X11 screensaver and DPMS blanking away while a
// fullscreen effect is on screen. It is driven from the frame loop.
type SleepInhibitor struct {
	held      bool
	dpms      bool
	dpmsWasOn bool
	lastPoke  time.Time
}

// Held reports whether the inhibitor is active.
func (s *SleepInhibitor) Held() bool { return s.held }

// Acquire disables DPMS if it is on and resets the screensaver timer.
func (s *SleepInhibitor) Acquire() error {
	if s.held {
		return nil
	}
	if XConn == nil {
		if err := InitX11(); err != nil {
			return fmt.Errorf("connect to X server: %w", err)
		}
	}

	s.dpms = dpms.Init(XConn) == nil
	if s.dpms {
		info, err := dpms.Info(XConn).Reply()
		if err == nil && info.State {
			s.dpmsWasOn = true
			if err := dpms.DisableChecked(XConn).Check(); err != nil {
				Warn("Inhibitor: could not disable DPMS: %v", err)
				s.dpmsWasOn = false
			}
		}
	}

	s.held = true
	s.lastPoke = time.Time{}
	Debug("Inhibitor: acquired (dpms=%v, restore=%v)", s.dpms, s.dpmsWasOn)
	return s.Poke(time.Now())
}

// Poke resets the screensaver timer at most once per PokeInterval.
func (s *SleepInhibitor) Poke(now time.Time) error {
	if !s.held || XConn == nil {
		return nil
	}
	if !s.lastPoke.IsZero() && now.Sub(s.lastPoke) < PokeInterval {
		return nil
	}
	s.lastPoke = now
	if err := xproto.ForceScreenSaverChecked(XConn, xproto.ScreenSaverReset).Check(); err != nil {
		return fmt.Errorf("reset screensaver: %w", err)
	}
	return nil
}

// Release restores DPMS when Acquire turned it off.
func (s *SleepInhibitor) Release() {
	if !s.held {
		return
	}
	s.held = false
	if s.dpmsWasOn && XConn != nil {
		if err := dpms.EnableChecked(XConn).Check(); err != nil {
			Warn("Inhibitor: could not re-enable DPMS: %v", err)
		}
	}
	s.dpmsWasOn = false
	Debug("Inhibitor: released")
}
