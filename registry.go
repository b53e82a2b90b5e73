package beancountchile

import "github.com/mabahamo/beancount-chile/date"

// Importer recognizes and extracts one kind of statement document. Per
// institution implementations live in their own subpackages.
type Importer interface {
	// Name identifies the importer, such as "banco-chile-account".
	Name() string
	// Identify reports whether this importer handles the document.
	Identify(src Source) bool
	// Account returns the beancount account statements of this importer
	// belong to.
	Account() string
	// Date returns the date the document should be archived under,
	// usually the statement's closing date.
	Date(src Source) (date.Date, error)
	// Filename returns a normalized archive filename for the document.
	Filename(src Source) (string, error)
	// Extract converts the document into ledger entries.
	Extract(src Source) ([]Entry, error)
}

// Registry routes documents to importers, first match wins in
// registration order.
type Registry struct {
	importers []Importer
}

// Register appends importers to the registry.
func (r *Registry) Register(imps ...Importer) {
	r.importers = append(r.importers, imps...)
}

// Route returns the first registered importer that identifies the
// document, or false when none does.
func (r *Registry) Route(src Source) (Importer, bool) {
	for _, imp := range r.importers {
		if imp.Identify(src) {
			return imp, true
		}
	}
	return nil, false
}

// Importers returns the registered importers in order.
func (r *Registry) Importers() []Importer { return r.importers }
