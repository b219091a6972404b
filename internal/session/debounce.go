package session

import (
	"log"
	"sync"
	"time"
)

// SaveFunc debounce süresi dolduğunda son değeri kalıcılaştırır.
type SaveFunc func(workspaceID, title string) error

// TitleDebouncer hızlı ardışık başlık düzenlemelerini workspace başına tek
// bir yazmaya indirger. Her Edit zamanlayıcıyı yeniden kurar; süre sessiz
// geçerse yalnızca son değer kaydedilir.
type TitleDebouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	save    SaveFunc
	pending map[string]*pendingEdit
	closed  bool
}

type pendingEdit struct {
	timer *time.Timer
	title string
}

const DefaultDebounceDelay = 500 * time.Millisecond

func NewTitleDebouncer(delay time.Duration, save SaveFunc) *TitleDebouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &TitleDebouncer{
		delay:   delay,
		save:    save,
		pending: make(map[string]*pendingEdit),
	}
}

// Edit son değeri kaydeder ve zamanlayıcıyı sıfırlar.
func (d *TitleDebouncer) Edit(workspaceID, title string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if p, ok := d.pending[workspaceID]; ok {
		p.title = title
		p.timer.Reset(d.delay)
		return
	}

	p := &pendingEdit{title: title}
	p.timer = time.AfterFunc(d.delay, func() {
		d.fire(workspaceID)
	})
	d.pending[workspaceID] = p
}

func (d *TitleDebouncer) fire(workspaceID string) {
	d.mu.Lock()
	p, ok := d.pending[workspaceID]
	if !ok {
		d.mu.Unlock()
		return
	}
	delete(d.pending, workspaceID)
	title := p.title
	d.mu.Unlock()

	if err := d.save(workspaceID, title); err != nil {
		log.Printf("Could not persist title for workspace %s: %v", workspaceID, err)
	}
}

// Flush bekleyen düzenlemeyi süreyi beklemeden kalıcılaştırır.
func (d *TitleDebouncer) Flush(workspaceID string) {
	d.mu.Lock()
	p, ok := d.pending[workspaceID]
	if ok {
		p.timer.Stop()
	}
	d.mu.Unlock()

	if ok {
		d.fire(workspaceID)
	}
}

// Close tüm bekleyen düzenlemeleri kalıcılaştırır ve yenilerini reddeder.
func (d *TitleDebouncer) Close() {
	d.mu.Lock()
	d.closed = true
	ids := make([]string, 0, len(d.pending))
	for id, p := range d.pending {
		p.timer.Stop()
		ids = append(ids, id)
	}
	d.mu.Unlock()

	for _, id := range ids {
		d.fire(id)
	}
}
