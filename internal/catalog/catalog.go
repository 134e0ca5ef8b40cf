package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"launchpath/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

// QuestionOption es una respuesta posible con su puntaje en [-1, 1].
type QuestionOption struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// Question es una pregunta de la autoevaluacion asociada a una dimension.
type Question struct {
	ID        string           `json:"id" yaml:"id"`
	Text      string           `json:"text" yaml:"text"`
	Dimension domain.Dimension `json:"dimension" yaml:"dimension"`
	Options   []QuestionOption `json:"options" yaml:"options"`
}

// DirectionTable agrupa las opciones de resultado y las acciones siguientes de una direccion.
type DirectionTable struct {
	Outcomes []string                     `yaml:"outcomes"`
	Actions  map[domain.Adjustment]string `yaml:"actions"`
}

// SummaryItem toma el valor de un campo de salida del capitulo con esa secuencia.
type SummaryItem struct {
	Label     string `yaml:"label"`
	Chapter   int    `yaml:"chapter"`
	Field     string `yaml:"field"`
	ChapterID string `yaml:"-"`
}

type SummarySectionTemplate struct {
	Title string        `yaml:"title"`
	Items []SummaryItem `yaml:"items"`
}

type pathsDoc struct {
	Paths []domain.BusinessPath `yaml:"paths"`
}

type milestonesDoc struct {
	Milestones []domain.Milestone `yaml:"milestones"`
}

type chaptersDoc struct {
	Chapters []domain.Chapter `yaml:"chapters"`
}

type checkinsDoc struct {
	LearnedOptions []string                  `yaml:"learned_options"`
	Directions     map[string]DirectionTable `yaml:"directions"`
}

type focusDoc struct {
	Initial map[string]domain.CurrentFocus `yaml:"initial"`
}

type summariesDoc struct {
	Summaries map[string][]SummarySectionTemplate `yaml:"summaries"`
}

type questionsDoc struct {
	Questions []Question `yaml:"questions"`
}

// Catalog contiene todo el contenido estatico. Se carga una vez y no se muta.
type Catalog struct {
	paths      []domain.BusinessPath
	pathIndex  map[string]int
	milestones []domain.Milestone
	chapters   []domain.Chapter
	directions map[string]DirectionTable
	learned    []string
	focus      map[string]domain.CurrentFocus
	questions  []Question
	summaries  map[string][]SummarySectionTemplate
}

// ValidationErrors acumula todos los problemas encontrados al validar el catalogo.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Error())
	}
	return "catalog validation failed: " + strings.Join(msgs, "; ")
}

// Load carga el catalogo embebido en el binario.
func Load() (*Catalog, error) {
	return LoadFS(dataFS, "data")
}

// LoadFS carga y valida el catalogo desde un directorio de un fs.FS.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	var (
		pd pathsDoc
		md milestonesDoc
		cd chaptersDoc
		kd checkinsDoc
		fd focusDoc
		qd questionsDoc
		sd summariesDoc
	)
	docs := []struct {
		name string
		out  any
	}{
		{"paths.yaml", &pd},
		{"milestones.yaml", &md},
		{"chapters.yaml", &cd},
		{"checkins.yaml", &kd},
		{"focus.yaml", &fd},
		{"questions.yaml", &qd},
		{"summaries.yaml", &sd},
	}
	for _, doc := range docs {
		data, err := fs.ReadFile(fsys, path.Join(dir, doc.name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", doc.name, err)
		}
		if err := yaml.Unmarshal(data, doc.out); err != nil {
			return nil, fmt.Errorf("parse %s: %w", doc.name, err)
		}
	}

	c := &Catalog{
		paths:      pd.Paths,
		pathIndex:  make(map[string]int, len(pd.Paths)),
		milestones: md.Milestones,
		chapters:   cd.Chapters,
		directions: kd.Directions,
		learned:    kd.LearnedOptions,
		focus:      fd.Initial,
		questions:  qd.Questions,
		summaries:  sd.Summaries,
	}
	for i, p := range c.paths {
		c.pathIndex[p.ID] = i
	}
	sort.SliceStable(c.milestones, func(i, j int) bool {
		if c.milestones[i].PathID != c.milestones[j].PathID {
			return c.milestones[i].PathID < c.milestones[j].PathID
		}
		return c.milestones[i].Sequence < c.milestones[j].Sequence
	})
	sort.SliceStable(c.chapters, func(i, j int) bool {
		if c.chapters[i].PathID != c.chapters[j].PathID {
			return c.chapters[i].PathID < c.chapters[j].PathID
		}
		return c.chapters[i].Sequence < c.chapters[j].Sequence
	})

	if errs := c.validate(); len(errs) > 0 {
		return nil, errs
	}
	return c, nil
}

func (c *Catalog) validate() ValidationErrors {
	var errs ValidationErrors
	if len(c.paths) == 0 {
		errs = append(errs, fmt.Errorf("no business paths defined"))
	}
	if len(c.pathIndex) != len(c.paths) {
		errs = append(errs, fmt.Errorf("duplicate business path ids"))
	}

	for _, p := range c.paths {
		if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("path %q: id and name are required", p.ID))
		}
		if err := p.EvaluationWeight.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("path %q: evaluation_weight: %w", p.ID, err))
		}
		if strings.TrimSpace(p.FirstCommitment) == "" {
			errs = append(errs, fmt.Errorf("path %q: first_commitment is required", p.ID))
		}

		table, ok := c.directions[p.ID]
		if !ok {
			errs = append(errs, fmt.Errorf("path %q: missing check-in table", p.ID))
		} else {
			for _, adj := range domain.Adjustments {
				if strings.TrimSpace(table.Actions[adj]) == "" {
					errs = append(errs, fmt.Errorf("path %q: missing %s action", p.ID, adj))
				}
			}
			if len(table.Outcomes) == 0 {
				errs = append(errs, fmt.Errorf("path %q: no outcome options", p.ID))
			}
		}
		if _, ok := c.focus[p.ID]; !ok {
			errs = append(errs, fmt.Errorf("path %q: missing initial focus", p.ID))
		}
		if len(c.Chapters(p.ID)) == 0 {
			errs = append(errs, fmt.Errorf("path %q: no chapters", p.ID))
		}
	}

	for id := range c.directions {
		if !c.HasPath(id) {
			errs = append(errs, fmt.Errorf("check-in table for unknown path %q", id))
		}
	}
	if len(c.learned) == 0 {
		errs = append(errs, fmt.Errorf("no learned options"))
	}

	keys := make(map[string]struct{}, len(c.milestones))
	for _, m := range c.milestones {
		if _, dup := keys[m.Key]; dup {
			errs = append(errs, fmt.Errorf("duplicate milestone key %q", m.Key))
		}
		keys[m.Key] = struct{}{}
		if !c.HasPath(m.PathID) {
			errs = append(errs, fmt.Errorf("milestone %q: unknown path %q", m.Key, m.PathID))
		}
		switch m.Category {
		case domain.MilestoneTraction, domain.MilestoneRevenue, domain.MilestoneSystems, domain.MilestoneGrowth:
		default:
			errs = append(errs, fmt.Errorf("milestone %q: invalid category %q", m.Key, m.Category))
		}
	}

	chapterIDs := make(map[string]struct{}, len(c.chapters))
	for _, ch := range c.chapters {
		if _, dup := chapterIDs[ch.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate chapter id %q", ch.ID))
		}
		chapterIDs[ch.ID] = struct{}{}
		if !c.HasPath(ch.PathID) {
			errs = append(errs, fmt.Errorf("chapter %q: unknown path %q", ch.ID, ch.PathID))
		}
		if len(ch.RequiredOutputs) == 0 {
			errs = append(errs, fmt.Errorf("chapter %q: no required outputs", ch.ID))
		}
	}

	for id := range c.summaries {
		if !c.HasPath(id) {
			errs = append(errs, fmt.Errorf("summary template for unknown path %q", id))
		}
	}
	for _, p := range c.paths {
		errs = append(errs, c.resolveSummary(p.ID)...)
	}

	for _, q := range c.questions {
		if _, err := dimensionIndex(q.Dimension); err != nil {
			errs = append(errs, fmt.Errorf("question %q: %w", q.ID, err))
		}
		for _, opt := range q.Options {
			if opt.Value < -1 || opt.Value > 1 {
				errs = append(errs, fmt.Errorf("question %q: option %q out of range", q.ID, opt.Label))
			}
		}
	}
	for _, d := range domain.Dimensions {
		if len(c.QuestionsFor(d)) == 0 {
			errs = append(errs, fmt.Errorf("no questions for dimension %s", d))
		}
	}
	return errs
}

// resolveSummary valida la plantilla del path y fija el id de capitulo de cada item.
func (c *Catalog) resolveSummary(pathID string) ValidationErrors {
	sections, ok := c.summaries[pathID]
	if !ok || len(sections) == 0 {
		return ValidationErrors{fmt.Errorf("path %q: missing summary template", pathID)}
	}
	chapters := c.Chapters(pathID)
	var errs ValidationErrors
	for si := range sections {
		sec := &sections[si]
		if strings.TrimSpace(sec.Title) == "" || len(sec.Items) == 0 {
			errs = append(errs, fmt.Errorf("path %q: summary section %d needs a title and items", pathID, si))
		}
		for ii := range sec.Items {
			item := &sec.Items[ii]
			ch, found := chapterBySequence(chapters, item.Chapter)
			if !found {
				errs = append(errs, fmt.Errorf("path %q: summary item %q: no chapter %d", pathID, item.Label, item.Chapter))
				continue
			}
			if !hasOutputField(ch, item.Field) {
				errs = append(errs, fmt.Errorf("path %q: summary item %q: chapter %q has no field %q", pathID, item.Label, ch.ID, item.Field))
				continue
			}
			item.ChapterID = ch.ID
		}
	}
	return errs
}

func chapterBySequence(chapters []domain.Chapter, seq int) (domain.Chapter, bool) {
	for _, ch := range chapters {
		if ch.Sequence == seq {
			return ch, true
		}
	}
	return domain.Chapter{}, false
}

func hasOutputField(ch domain.Chapter, field string) bool {
	for _, f := range ch.RequiredOutputs {
		if f.FieldName == field {
			return true
		}
	}
	return false
}

func dimensionIndex(d domain.Dimension) (int, error) {
	for i, known := range domain.Dimensions {
		if known == d {
			return i, nil
		}
	}
	return -1, fmt.Errorf("unknown dimension %q", d)
}

// Paths devuelve los paths en orden de catalogo.
func (c *Catalog) Paths() []domain.BusinessPath {
	out := make([]domain.BusinessPath, len(c.paths))
	copy(out, c.paths)
	return out
}

func (c *Catalog) Path(id string) (domain.BusinessPath, bool) {
	i, ok := c.pathIndex[id]
	if !ok {
		return domain.BusinessPath{}, false
	}
	return c.paths[i], true
}

func (c *Catalog) HasPath(id string) bool {
	_, ok := c.pathIndex[id]
	return ok
}

// Milestones devuelve los hitos de un path ordenados por sequence.
func (c *Catalog) Milestones(pathID string) []domain.Milestone {
	var out []domain.Milestone
	for _, m := range c.milestones {
		if m.PathID == pathID {
			out = append(out, m)
		}
	}
	return out
}

func (c *Catalog) Milestone(key string) (domain.Milestone, bool) {
	for _, m := range c.milestones {
		if m.Key == key {
			return m, true
		}
	}
	return domain.Milestone{}, false
}

// Chapters devuelve los capitulos de un path ordenados por sequence.
func (c *Catalog) Chapters(pathID string) []domain.Chapter {
	var out []domain.Chapter
	for _, ch := range c.chapters {
		if ch.PathID == pathID {
			out = append(out, ch)
		}
	}
	return out
}

func (c *Catalog) Chapter(id string) (domain.Chapter, bool) {
	for _, ch := range c.chapters {
		if ch.ID == id {
			return ch, true
		}
	}
	return domain.Chapter{}, false
}

// NextChapter devuelve el capitulo siguiente dentro del mismo path, si existe.
func (c *Catalog) NextChapter(id string) (domain.Chapter, bool) {
	current, ok := c.Chapter(id)
	if !ok {
		return domain.Chapter{}, false
	}
	for _, ch := range c.Chapters(current.PathID) {
		if ch.Sequence == current.Sequence+1 {
			return ch, true
		}
	}
	return domain.Chapter{}, false
}

func (c *Catalog) Direction(pathID string) (DirectionTable, bool) {
	t, ok := c.directions[pathID]
	return t, ok
}

func (c *Catalog) LearnedOptions() []string {
	out := make([]string, len(c.learned))
	copy(out, c.learned)
	return out
}

func (c *Catalog) InitialFocus(pathID string) (domain.CurrentFocus, bool) {
	f, ok := c.focus[pathID]
	return f, ok
}

// SummaryTemplate devuelve las secciones del resumen del negocio de un path.
func (c *Catalog) SummaryTemplate(pathID string) ([]SummarySectionTemplate, bool) {
	sections, ok := c.summaries[pathID]
	if !ok {
		return nil, false
	}
	out := make([]SummarySectionTemplate, len(sections))
	copy(out, sections)
	return out, true
}

func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// QuestionsFor devuelve las preguntas que alimentan una dimension.
func (c *Catalog) QuestionsFor(d domain.Dimension) []Question {
	var out []Question
	for _, q := range c.questions {
		if q.Dimension == d {
			out = append(out, q)
		}
	}
	return out
}
