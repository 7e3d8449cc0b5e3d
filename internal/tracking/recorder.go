package tracking

import (
	"log"

	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/models"
)

// Recorder persists visits off the request path, same shape as the audit
// dispatcher: buffered channel, single writer, drop on overflow.
type Recorder struct {
	db    *gorm.DB
	queue chan models.Visit
}

func NewRecorder(db *gorm.DB) *Recorder {
	r := &Recorder{
		db:    db,
		queue: make(chan models.Visit, 256),
	}

	go r.worker()
	return r
}

func (r *Recorder) worker() {
	for v := range r.queue {
		if err := r.db.Create(&v).Error; err != nil {
			log.Println("tracking error:", err)
		}
	}
}

func (r *Recorder) Record(v models.Visit) {
	select {
	case r.queue <- v:
	default:
		log.Println("tracking queue full, dropping visit")
	}
}
