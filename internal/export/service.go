// Package export assembles the delivery bundle: payment ledger, per-worker
// document copies, per-period service orders in both office formats, and the
// document checklist. The whole bundle is built in memory and returned as a
// single zip; nothing is emitted on failure of the bundle itself, while a
// failing worker or period is logged and skipped so one bad record cannot
// block the rest of the delivery.
package export

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lawliet8886/RPA/internal/common"
	"github.com/lawliet8886/RPA/internal/compliance"
	"github.com/lawliet8886/RPA/internal/container"
	"github.com/lawliet8886/RPA/internal/docx"
	"github.com/lawliet8886/RPA/internal/entity"
	"github.com/lawliet8886/RPA/internal/pdf"
	"github.com/lawliet8886/RPA/internal/registry"
	"github.com/lawliet8886/RPA/internal/xlsx"
)

const motivoSubstituicao = "Vacância Unidade"

// Failure records one worker or billing period that was skipped while the
// rest of the bundle went ahead. Period is empty for worker-level failures.
type Failure struct {
	WorkerID uuid.UUID
	Nome     string
	Period   string
	Err      error
}

// BlobReader resolves an attachment's storage reference to its content.
type BlobReader interface {
	Read(ctx context.Context, ref string) ([]byte, error)
}

// Assets are the fixed template inputs of a bundle run.
type Assets struct {
	DocxTemplate []byte
	PageImages   [][]byte
	Layout       []pdf.Field // nil selects the default field table
}

type Service struct {
	assets Assets
	blobs  BlobReader
	pdfGen *pdf.Generator
	logger *slog.Logger
}

func NewService(assets Assets, blobs BlobReader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		assets: assets,
		blobs:  blobs,
		pdfGen: pdf.NewGenerator(assets.PageImages, assets.Layout),
		logger: logger,
	}
}

// Export builds the bundle zip from a state snapshot. now anchors pendency
// evaluation. The returned failures list every worker or period that was
// skipped; the bundle is complete exactly when it is empty.
func (s *Service) Export(ctx context.Context, snap registry.Snapshot, now time.Time) ([]byte, []Failure, error) {
	start := time.Now()
	w := container.NewWriter()

	const base = "RPA/"
	if err := w.WriteDir(base); err != nil {
		return nil, nil, common.WrapError(err, "create bundle root")
	}
	if err := w.WriteDir(base + "PROFISSIONAIS/"); err != nil {
		return nil, nil, common.WrapError(err, "create bundle root")
	}

	prices := priceIndex(snap.PriceRules)

	ledger, err := xlsx.WriteWorkbook("Pagamento", ledgerRows(snap, prices))
	if err != nil {
		return nil, nil, common.WrapError(err, "write payment ledger")
	}
	if err := w.WritePart(base+"CONTROLE_PAGAMENTO.xlsx", ledger); err != nil {
		return nil, nil, common.WrapError(err, "write payment ledger")
	}

	var failures []Failure
	for _, worker := range snap.Workers {
		skipped, err := s.exportWorker(ctx, w, base, worker, snap, prices, now)
		failures = append(failures, skipped...)
		if err != nil {
			s.logger.Error("export.worker.failed", "worker_id", worker.ID, "nome", worker.Nome, "error", err)
			failures = append(failures, Failure{WorkerID: worker.ID, Nome: worker.Nome, Err: err})
			continue
		}
	}

	out, err := w.Bytes()
	if err != nil {
		return nil, nil, common.WrapError(err, "finish bundle")
	}

	s.logger.Info("export.bundle.ok",
		"workers", len(snap.Workers),
		"skipped", len(failures),
		"size_bytes", len(out),
		"elapsed", time.Since(start))
	return out, failures, nil
}

func (s *Service) exportWorker(ctx context.Context, w *container.Writer, base string, worker entity.Worker, snap registry.Snapshot, prices map[entity.PriceKey]decimal.Decimal, now time.Time) ([]Failure, error) {
	profBase := base + "PROFISSIONAIS/" + workerFolderName(worker) + "/"
	if err := w.WriteDir(profBase); err != nil {
		return nil, err
	}
	if err := w.WriteDir(profBase + "DOCUMENTOS/"); err != nil {
		return nil, err
	}

	var attachments []entity.Attachment
	for _, a := range snap.Attachments {
		if a.WorkerID == worker.ID {
			attachments = append(attachments, a)
		}
	}

	for _, att := range attachments {
		data, err := s.blobs.Read(ctx, att.StorageRef)
		if err != nil {
			s.logger.Warn("export.attachment.skipped", "worker_id", worker.ID, "ref", att.StorageRef, "error", err)
			continue
		}
		name := sanitizeFileName(string(att.Category) + "_" + att.DisplayName)
		if err := w.WritePart(profBase+"DOCUMENTOS/"+name, data); err != nil {
			return nil, err
		}
	}

	var shifts []entity.Shift
	for _, sh := range snap.Shifts {
		if sh.WorkerID == worker.ID {
			shifts = append(shifts, sh)
		}
	}

	var failures []Failure
	for _, group := range GroupByPeriod(shifts) {
		if err := s.exportPeriod(w, profBase, worker, group, prices); err != nil {
			s.logger.Error("export.period.failed",
				"worker_id", worker.ID, "period", group.Period.DocBase(), "error", err)
			failures = append(failures, Failure{
				WorkerID: worker.ID,
				Nome:     worker.Nome,
				Period:   group.Period.DocBase(),
				Err:      err,
			})
			continue
		}
	}

	pendencies := compliance.ComputePendencies(worker, snap.Attachments, now)
	checklist := buildChecklist(worker, attachments, pendencies)
	return failures, w.WritePart(profBase+"CHECKLIST_DOCUMENTOS.txt", []byte(checklist))
}

func (s *Service) exportPeriod(w *container.Writer, profBase string, worker entity.Worker, group PeriodGroup, prices map[entity.PriceKey]decimal.Decimal) error {
	placeholders := buildPlaceholders(worker, group, prices)

	filled, err := docx.Fill(s.assets.DocxTemplate, placeholders)
	if err != nil {
		return common.WrapError(err, "fill service order")
	}
	if err := w.WritePart(profBase+group.Period.DocBase()+".docx", filled); err != nil {
		return err
	}

	rendered, err := s.pdfGen.Generate(placeholders)
	if err != nil {
		return common.WrapError(err, "render service order")
	}
	return w.WritePart(profBase+group.Period.DocBase()+".pdf", rendered)
}

// buildPlaceholders computes the full substitution map for one worker and
// billing period. The substitution block is fixed to the vacancy wording;
// its companion fields stay blank until a record supplies them.
func buildPlaceholders(worker entity.Worker, group PeriodGroup, prices map[entity.PriceKey]decimal.Decimal) map[string]string {
	totalHours := 0
	totalValue := decimal.Zero
	var resumo, datas []string
	for _, sh := range group.Shifts {
		totalHours += sh.Hours
		totalValue = totalValue.Add(shiftValue(worker, sh, prices))

		d, _ := sh.Date()
		resumo = append(resumo, d.Format("02/01")+" - "+strconv.Itoa(sh.Hours)+"h "+strings.ToLower(string(sh.Period)))
		datas = append(datas, d.Format("02/01/2006"))
	}

	return map[string]string{
		"nome_profissional":       worker.Nome,
		"cpf":                     worker.Extracted.CPF,
		"pis":                     worker.Extracted.PISPasep,
		"endereco":                worker.Endereco,
		"telefone_contato":        worker.Telefone,
		"email":                   worker.Email,
		"estado_civil":            worker.EstadoCivil,
		"funcao":                  worker.Funcao,
		"carga_horaria_total":     strconv.Itoa(totalHours),
		"valor_os":                totalValue.StringFixed(2),
		"datas_prestacao_servico": strings.Join(datas, ", "),
		"dias_prestacao_resumido": strings.Join(resumo, "; "),
		"data_envio_os":           SubmissionDate(group.Period).Format("02/01/2006"),
		"numero_coren":            worker.Extracted.CorenNumero,
		"data_emissao_coren":      "",
		"motivo_substituicao":     motivoSubstituicao,
		"nome_substituido":        "",
		"cpf_substituido":         "",
		"coren_substituido":       "",
	}
}

// ledgerRows flattens every worker's shifts into the payment sheet, one row
// per shift, workers in name order and shifts in date order.
func ledgerRows(snap registry.Snapshot, prices map[entity.PriceKey]decimal.Decimal) [][]string {
	rows := [][]string{{"Profissional", "CPF", "Função", "Data", "Turno", "Horas", "Valor"}}
	for _, worker := range snap.Workers {
		var shifts []entity.Shift
		for _, sh := range snap.Shifts {
			if sh.WorkerID == worker.ID {
				shifts = append(shifts, sh)
			}
		}
		sort.Slice(shifts, func(i, j int) bool { return shifts[i].DateISO < shifts[j].DateISO })
		for _, sh := range shifts {
			dateOut := sh.DateISO
			if d, err := sh.Date(); err == nil {
				dateOut = d.Format("02/01/2006")
			}
			rows = append(rows, []string{
				worker.Nome,
				worker.Extracted.CPF,
				worker.Funcao,
				dateOut,
				string(sh.Period),
				strconv.Itoa(sh.Hours),
				shiftValue(worker, sh, prices).StringFixed(2),
			})
		}
	}
	return rows
}

func priceIndex(rules []entity.PriceRule) map[entity.PriceKey]decimal.Decimal {
	idx := make(map[entity.PriceKey]decimal.Decimal, len(rules))
	for _, r := range rules {
		idx[r.Key()] = r.Value
	}
	return idx
}

// shiftValue prices one shift; an unpriced combination counts as zero so the
// ledger still lists the worked day.
func shiftValue(worker entity.Worker, sh entity.Shift, prices map[entity.PriceKey]decimal.Decimal) decimal.Decimal {
	if v, ok := prices[entity.PriceKey{Funcao: worker.Funcao, Period: sh.Period, Hours: sh.Hours}]; ok {
		return v
	}
	return decimal.Zero
}

var (
	reUnsafe     = regexp.MustCompile(`[\\/:*?"<>|]`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

func sanitizeFileName(name string) string {
	out := reUnsafe.ReplaceAllString(name, "_")
	out = reWhitespace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

func workerFolderName(worker entity.Worker) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, worker.Extracted.CPF)
	base := strings.TrimSpace(worker.Nome)
	if base == "" {
		base = "PROFISSIONAL"
	}
	return sanitizeFileName(base + "_" + digits)
}
