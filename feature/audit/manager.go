package audit

import (
	"context"
	"time"

	"asset-audit/feature/audit/models"
	"asset-audit/feature/audit/scan"

	"go.uber.org/zap"
)

// Manager owns the single audit session of the process and everything wired
// around it: the scan adapters, the notification recorder, and the optional
// summary archiver. Handlers and the CLI talk to the Manager, never to the
// Session directly.
type Manager struct {
	log      *zap.Logger
	cfg      Config
	session  *Session
	recorder *Recorder
	archiver *Archiver

	manual   *scan.ManualAdapter
	keyboard *scan.KeyboardAdapter
}

// NewManager builds a manager around gateway. archiver may be nil when
// archiving is disabled. extra notifiers (e.g. a console notifier for the CLI)
// are combined with the manager's recorder and log notifier.
func NewManager(cfg Config, gateway Gateway, archiver *Archiver, log *zap.Logger, extra ...Notifier) *Manager {
	recorder := NewRecorder(cfg.EventLimit)
	notifiers := append([]Notifier{recorder, &LogNotifier{Log: log}}, extra...)

	session := NewSession(gateway, CombineNotifiers(notifiers...), log)

	m := &Manager{
		log:      log,
		cfg:      cfg,
		session:  session,
		recorder: recorder,
		archiver: archiver,
	}

	warn := func(msg string) { m.session.notifier.Warning(msg) }

	m.manual = scan.NewManualAdapter(session.SubmitScan)
	m.keyboard = scan.NewKeyboardAdapter(session.SubmitScan,
		time.Duration(cfg.DebounceMS)*time.Millisecond)
	camera := scan.NewCameraAdapter(
		&scan.SimulatedDecoder{},
		session.SubmitScan, warn,
		time.Duration(cfg.CameraPollMS)*time.Millisecond,
		time.Duration(cfg.CameraPauseMS)*time.Millisecond)
	rfid := scan.NewRFIDAdapter(session.SimulationPick, session.SubmitScan,
		time.Duration(cfg.RfidIntervalMS)*time.Millisecond)

	session.RegisterAdapter(models.MethodManual, m.manual)
	session.RegisterAdapter(models.MethodBarcode, m.keyboard)
	session.RegisterAdapter(models.MethodQrcode, camera)
	session.RegisterAdapter(models.MethodRfid, rfid)

	return m
}

// Start begins an audit for roomID with the given method. An empty method
// keeps the session's current one. A rejected start leaves the running
// session untouched, its event history included.
func (m *Manager) Start(ctx context.Context, roomID string, method models.Method) error {
	if m.session.State() != models.StateIdle {
		return ErrAuditActive
	}
	m.recorder.Reset()
	return m.session.Start(ctx, roomID, method)
}

// Scan submits one operator-typed identifier through the manual adapter.
func (m *Manager) Scan(input string) error {
	return m.manual.Submit(input)
}

// PressKeys feeds a keystroke chunk to the barcode wedge adapter.
func (m *Manager) PressKeys(text string) {
	m.keyboard.HandleText(text, false)
}

// SetMethod switches the active input modality.
func (m *Manager) SetMethod(method models.Method) error {
	return m.session.SetMethod(method)
}

// Stop finalizes the audit. markMissing selects whether unfound expected
// assets are reported missing. The summary is archived when an archiver is
// configured.
func (m *Manager) Stop(ctx context.Context, markMissing bool) (*models.Summary, error) {
	summary, err := m.session.Stop(markMissing)
	if err != nil {
		return nil, err
	}

	if m.archiver != nil {
		if archErr := m.archiver.Archive(ctx, summary); archErr != nil {
			m.log.Warn("Failed to archive audit summary",
				zap.String("room", summary.RoomID), zap.Error(archErr))
		}
	}
	return summary, nil
}

// Cancel discards the audit. Cancelled sessions are never archived.
func (m *Manager) Cancel() (*models.Summary, error) {
	return m.session.Cancel()
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() models.Snapshot {
	return m.session.Snapshot()
}

// State returns the session lifecycle state.
func (m *Manager) State() models.State {
	return m.session.State()
}

// Events returns the recorded notification history, oldest first.
func (m *Manager) Events() []Event {
	return m.recorder.Events()
}

// Latest returns the most recent notification.
func (m *Manager) Latest() (Event, bool) {
	return m.recorder.Latest()
}
