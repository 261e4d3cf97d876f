package file

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"medicine-tracker/internal/domain/history"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/patient"
	"medicine-tracker/internal/domain/settings"
	"medicine-tracker/internal/platform/logger"
)

const (
	medicinesFile = "medicines.json"
	historyFile   = "history.json"
	settingsFile  = "settings.json"
	patientFile   = "patient.json"
)

// Store persiste cada colección como JSON en dir, con saves debounced en
// background. Contrato de carga: archivo ausente o corrupto => colección
// vacía y settings default, nunca falla el arranque por datos ilegibles.
type Store struct {
	mu sync.RWMutex

	meds  []medicines.Medicine // orden de inserción
	hist  []history.Entry      // más reciente primero
	sets  settings.Settings
	pat   patient.Patient
	dirty map[string]bool

	dir       string
	saveChan  chan struct{}
	shutdown  chan struct{}
	closeOnce sync.Once
	saveDelay time.Duration
	log       logger.Logger
}

func NewStore(dir string, log logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s := &Store{
		sets:      settings.Default(),
		dirty:     make(map[string]bool),
		dir:       dir,
		saveChan:  make(chan struct{}, 1),
		shutdown:  make(chan struct{}),
		saveDelay: 500 * time.Millisecond,
		log:       log,
	}

	s.loadAll()
	go s.saveWorker()

	return s, nil
}

func (s *Store) loadAll() {
	if !s.loadJSON(medicinesFile, &s.meds) {
		s.meds = nil
	}
	if !s.loadJSON(historyFile, &s.hist) {
		s.hist = nil
	}
	if !s.loadJSON(settingsFile, &s.sets) {
		s.sets = settings.Default()
	}
	if !s.loadJSON(patientFile, &s.pat) {
		s.pat = patient.Patient{}
	}
	if len(s.hist) > history.Capacity {
		s.hist = s.hist[:history.Capacity]
	}
}

// loadJSON devuelve false si el archivo no existe o no parsea.
func (s *Store) loadJSON(name string, out any) bool {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return false
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		if !errors.Is(err, io.EOF) && s.log != nil {
			s.log.Warn("storage: unreadable data file, starting empty",
				map[string]any{"file": name, "error": err.Error()})
		}
		return false
	}
	return true
}

// markDirty se llama con s.mu tomado.
func (s *Store) markDirty(name string) {
	s.dirty[name] = true
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

func (s *Store) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			s.saveDirty()
		case <-s.shutdown:
			return
		}
	}
}

func (s *Store) saveDirty() {
	s.mu.Lock()
	pending := make([]string, 0, len(s.dirty))
	for name := range s.dirty {
		pending = append(pending, name)
	}
	s.dirty = make(map[string]bool)
	s.mu.Unlock()

	for _, name := range pending {
		if err := s.saveFile(name); err != nil && s.log != nil {
			s.log.Error("storage: save failed", map[string]any{"file": name, "error": err.Error()})
		}
	}
}

func (s *Store) saveFile(name string) error {
	s.mu.RLock()
	var data any
	switch name {
	case medicinesFile:
		meds := make([]medicines.Medicine, len(s.meds))
		copy(meds, s.meds)
		data = meds
	case historyFile:
		hist := make([]history.Entry, len(s.hist))
		copy(hist, s.hist)
		data = hist
	case settingsFile:
		data = s.sets
	case patientFile:
		data = s.pat
	}
	s.mu.RUnlock()

	return atomicWriteJSON(filepath.Join(s.dir, name), data)
}

func atomicWriteJSON(path string, data any) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Close corta el worker y hace flush sincrónico de todo.
func (s *Store) Close() error {
	s.closeOnce.Do(func() { close(s.shutdown) })

	for _, name := range []string{medicinesFile, historyFile, settingsFile, patientFile} {
		if err := s.saveFile(name); err != nil {
			return err
		}
	}
	return nil
}
