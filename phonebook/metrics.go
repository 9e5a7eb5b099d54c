package phonebook

import (
	"context"

	"github.com/VictoriaMetrics/metrics"

	ds "github.com/oaiiae/huma-phonebook/datastores"
)

type bookMetrics struct {
	addedTotal    *metrics.Counter
	updatedTotal  *metrics.Counter
	removedTotal  *metrics.Counter
	rejectedTotal *metrics.Counter
}

func newBookMetrics(set *metrics.Set, store ds.ContactsStore) *bookMetrics {
	set.NewGauge("phonebook_contacts", func() float64 {
		if s, ok := store.(interface{ Len() int }); ok {
			return float64(s.Len())
		}
		cs, _ := store.List(context.Background())
		return float64(len(cs))
	})
	return &bookMetrics{
		addedTotal:    set.NewCounter("phonebook_contacts_added_total"),
		updatedTotal:  set.NewCounter("phonebook_contacts_updated_total"),
		removedTotal:  set.NewCounter("phonebook_contacts_removed_total"),
		rejectedTotal: set.NewCounter("phonebook_submit_rejected_total"),
	}
}

// The methods below are no-ops on a nil receiver so a Book without
// metrics needs no checks.

func (m *bookMetrics) added() {
	if m != nil {
		m.addedTotal.Inc()
	}
}

func (m *bookMetrics) updated() {
	if m != nil {
		m.updatedTotal.Inc()
	}
}

func (m *bookMetrics) removed() {
	if m != nil {
		m.removedTotal.Inc()
	}
}

func (m *bookMetrics) rejected() {
	if m != nil {
		m.rejectedTotal.Inc()
	}
}
