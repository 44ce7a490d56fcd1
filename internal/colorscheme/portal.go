package colorscheme

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"

	"github.com/iiroan/themectl/internal/platform"
)

const (
	portalDest           = "org.freedesktop.portal.Desktop"
	portalPath           = "/org/freedesktop/portal/desktop"
	portalSettings       = "org.freedesktop.portal.Settings"
	signalSettingChanged = portalSettings + ".SettingChanged"

	appearanceNamespace = "org.freedesktop.appearance"
	colorSchemeKey      = "color-scheme"
)

// Portal reads the appearance setting from the XDG desktop portal over the
// session bus and follows its SettingChanged signal.
type Portal struct {
	logger *log.Logger

	mu   sync.Mutex
	conn *dbus.Conn
}

// NewPortal returns a portal source. The bus connection is opened lazily.
func NewPortal(logger *log.Logger) *Portal {
	if logger == nil {
		logger = log.Default()
	}
	return &Portal{logger: logger}
}

func (p *Portal) Name() string { return SourcePortal }

func (p *Portal) connect() (*dbus.Conn, error) {
	if !platform.IsLinux() {
		return nil, ErrUnavailable
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		return p.conn, nil
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to session bus: %v", ErrUnavailable, err)
	}
	p.conn = conn
	return conn, nil
}

func (p *Portal) PrefersDark(ctx context.Context) (bool, error) {
	conn, err := p.connect()
	if err != nil {
		return false, err
	}

	obj := conn.Object(portalDest, portalPath)

	var v dbus.Variant
	call := obj.CallWithContext(ctx, portalSettings+".ReadOne", 0, appearanceNamespace, colorSchemeKey)
	if call.Err != nil {
		// older portals only implement the deprecated Read
		call = obj.CallWithContext(ctx, portalSettings+".Read", 0, appearanceNamespace, colorSchemeKey)
	}
	if call.Err != nil {
		return false, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, colorSchemeKey, call.Err)
	}
	if err := call.Store(&v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", colorSchemeKey, err)
	}

	dark, ok := decodeColorScheme(v)
	if !ok {
		return false, fmt.Errorf("%w: unexpected %s value %v", ErrUnavailable, colorSchemeKey, v)
	}
	return dark, nil
}

func (p *Portal) matchOptions() []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchObjectPath(portalPath),
		dbus.WithMatchInterface(portalSettings),
		dbus.WithMatchMember("SettingChanged"),
	}
}

func (p *Portal) Watch(onChange func(prefersDark bool)) (func(), error) {
	conn, err := p.connect()
	if err != nil {
		return nil, err
	}

	if err := conn.AddMatchSignal(p.matchOptions()...); err != nil {
		return nil, fmt.Errorf("couldn't register for portal setting changes: %w", err)
	}

	signals := make(chan *dbus.Signal, 10)
	conn.Signal(signals)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				dark, ok := decodeSettingChanged(sig)
				if !ok {
					continue
				}
				p.logger.Debug("portal color scheme changed", "dark", dark)
				onChange(dark)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
			conn.RemoveSignal(signals)
			if err := conn.RemoveMatchSignal(p.matchOptions()...); err != nil {
				p.logger.Debug("couldn't remove portal match signal", "error", err)
			}
		})
	}, nil
}

// Close closes the bus connection if one was opened.
func (p *Portal) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}

// decodeColorScheme interprets the portal value: 1 prefers dark, 2 prefers
// light. 0 is the desktop default, which GNOME and KDE use for their light
// setting, so it reads as light. Read wraps the value in a second variant.
func decodeColorScheme(v dbus.Variant) (dark bool, ok bool) {
	value := v.Value()
	if inner, isVariant := value.(dbus.Variant); isVariant {
		value = inner.Value()
	}
	n, isUint := value.(uint32)
	if !isUint {
		return false, false
	}
	switch n {
	case 1:
		return true, true
	case 0, 2:
		return false, true
	}
	return false, false
}

func decodeSettingChanged(sig *dbus.Signal) (dark bool, ok bool) {
	if sig == nil || sig.Name != signalSettingChanged || len(sig.Body) != 3 {
		return false, false
	}
	ns, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if ns != appearanceNamespace || key != colorSchemeKey {
		return false, false
	}
	v, isVariant := sig.Body[2].(dbus.Variant)
	if !isVariant {
		return false, false
	}
	return decodeColorScheme(v)
}
