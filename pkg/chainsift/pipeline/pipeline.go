// Package pipeline drives the extraction run: walk the archive, resolve
// each company's identity once, run every attachment through the
// normalize → pre-filter → date → segment → classify → dedupe chain,
// and flush surviving records per company.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/cognicore/chainsift/internal/edgar"
	"github.com/cognicore/chainsift/pkg/chainsift/classify"
	"github.com/cognicore/chainsift/pkg/chainsift/config"
	"github.com/cognicore/chainsift/pkg/chainsift/dates"
	"github.com/cognicore/chainsift/pkg/chainsift/dedupe"
	"github.com/cognicore/chainsift/pkg/chainsift/identity"
	"github.com/cognicore/chainsift/pkg/chainsift/normalize"
	"github.com/cognicore/chainsift/pkg/chainsift/segment"
	"github.com/cognicore/chainsift/pkg/chainsift/store"
)

// Coarse admission gate: attachments without any loan/credit-agreement
// vocabulary are not worth dating or segmenting.
var loanKeywordsRE = regexp.MustCompile(`(?i)\b(?:loan|credit|facility|agreement|indenture)\b`)

// Options configures a Pipeline. Store, Segmenter, Classifier, Dates,
// and Identity are required; Logger defaults to slog.Default().
type Options struct {
	Config     config.Config
	Store      store.Store
	Segmenter  *segment.Segmenter
	Classifier *classify.Classifier
	Dates      *dates.Extractor
	Identity   *identity.Resolver
	Logger     *slog.Logger
}

// Pipeline is the extraction orchestrator.
type Pipeline struct {
	cfg   config.Config
	out   store.Store
	seg   *segment.Segmenter
	cls   *classify.Classifier
	dates *dates.Extractor
	ident *identity.Resolver
	log   *slog.Logger
}

// Summary reports what one run processed. Records counts the rows
// emitted to the store; a failed batch flush is reported through
// FlushFailures, not subtracted, because a multi-sink store may have
// persisted the batch in another sink.
type Summary struct {
	Companies     int
	Attachments   int
	Skipped       int
	Records       int
	FlushFailures int
}

// New creates a Pipeline with the given dependencies.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:   opts.Config,
		out:   opts.Store,
		seg:   opts.Segmenter,
		cls:   opts.Classifier,
		dates: opts.Dates,
		ident: opts.Identity,
		log:   logger,
	}
}

// Run processes the whole archive. Only a missing root or an archive
// with no company folders returns an error; everything else degrades
// to skips.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	companies, err := edgar.Companies(p.cfg.DataRoot)
	if err != nil {
		return sum, err
	}
	p.log.Info("archive opened", "root", p.cfg.DataRoot, "companies", len(companies))

	for i, comp := range companies {
		recs := p.processCompany(comp, &sum)
		recs = dedupeRows(recs)

		if len(recs) > 0 {
			sum.Records += len(recs)
			if err := p.out.AppendBatch(ctx, recs); err != nil {
				// Later companies still get their flush.
				p.log.Error("batch flush failed", "company", comp.FolderID, "records", len(recs), "error", err)
				sum.FlushFailures++
			}
		}
		sum.Companies++

		if (i+1)%10 == 0 {
			p.log.Info("progress", "companies", i+1, "total", len(companies), "records", sum.Records)
		}
	}

	return sum, nil
}

// processCompany resolves identity once, then runs every attachment of
// every filing through the per-attachment chain. The fingerprint set is
// scoped here and dies with the company.
func (p *Pipeline) processCompany(comp edgar.Company, sum *Summary) []store.Record {
	id := p.resolveIdentity(comp)
	seen := dedupe.NewSet()

	filings, err := comp.Filings()
	if err != nil {
		p.log.Warn("cannot list filings", "company", comp.FolderID, "error", err)
		return nil
	}

	var recs []store.Record
	for _, filingPath := range filings {
		atts, err := edgar.Attachments(filingPath)
		if err != nil {
			p.log.Warn("cannot list attachments", "filing", filingPath, "error", err)
			continue
		}
		for _, att := range atts {
			sum.Attachments++
			rs, skipped := p.processAttachment(att, id, seen)
			if skipped {
				sum.Skipped++
			}
			recs = append(recs, rs...)
		}
	}
	return recs
}

// processAttachment runs the per-attachment state machine. Any failure
// is contained here: a malformed attachment is logged and skipped, it
// never aborts the company or the run. skipped reports a terminal skip;
// a dated attachment with no surviving sentence is not a skip.
func (p *Pipeline) processAttachment(att edgar.Attachment, id identity.Identity, seen *dedupe.Set) (recs []store.Record, skipped bool) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("attachment processing panicked", "attachment", att.Path, "panic", fmt.Sprint(r))
			recs, skipped = nil, true
		}
	}()

	text, err := normalize.File(att.Path, p.cfg.MaxFileBytes)
	if err != nil {
		p.log.Warn("attachment unreadable", "attachment", att.Name, "error", err)
		return nil, true
	}

	if !loanKeywordsRE.MatchString(text) {
		p.log.Info("no loan keywords", "attachment", att.Name)
		return nil, true
	}

	date, ok := p.dates.Extract(text)
	if !ok {
		// Designed rejection: an undatable contract is dropped whole.
		p.log.Info("no effective date", "attachment", att.Name)
		return nil, true
	}

	contractID := att.FilingID + "_" + att.Stem

	for _, s := range p.seg.Sentences(text) {
		if !p.cls.Relevant(s) {
			continue
		}
		if !seen.Accept(s) {
			continue
		}
		recs = append(recs, store.Record{
			CompanyID:     id.CompanyID,
			CompanyName:   id.CompanyName,
			ContractID:    contractID,
			EffectiveDate: date,
			Sentence:      s,
		})
	}
	return recs, false
}

// resolveIdentity reads the company's primary filing and hands it to
// the resolver. Read failures degrade to folder defaults.
func (p *Pipeline) resolveIdentity(comp edgar.Company) identity.Identity {
	var primaryText string

	if path, ok := comp.PrimaryFiling(); ok {
		text, err := normalize.File(path, p.cfg.MaxFileBytes)
		if err != nil {
			p.log.Warn("primary filing unreadable", "company", comp.FolderID, "error", err)
		} else {
			primaryText = text
		}
	} else {
		p.log.Warn("no primary filing found", "company", comp.FolderID)
	}

	id := p.ident.Resolve(comp.FolderID, primaryText)
	if id.CompanyID != comp.FolderID {
		p.log.Info("company id corrected", "folder", comp.FolderID, "cik", id.CompanyID)
	}
	return id
}

// dedupeRows drops full-row duplicates within one company batch before
// it is persisted.
func dedupeRows(recs []store.Record) []store.Record {
	if len(recs) < 2 {
		return recs
	}
	seen := make(map[store.Record]struct{}, len(recs))
	out := recs[:0]
	for _, r := range recs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
