package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/go-playground/validator/v10"

	"github.com/aradsms/phonebook/internal/phonebook_service/app"
	"github.com/aradsms/phonebook/internal/phonebook_service/domain"
)

var (
	// ErrUsage is returned for unknown commands or malformed flags.
	ErrUsage = errors.New("usage error")
	// ErrConfirmationRequired is returned by remove without -yes.
	ErrConfirmationRequired = errors.New("removal not confirmed, pass -yes")
)

var tableHeaders = []string{"#", "Full name", "Phones", "Note"}

// Handler runs one phonebook command against a ContactStore: it loads the
// store, applies the command and saves again if the command changed anything.
type Handler struct {
	store    *app.ContactStore
	logger   *slog.Logger
	validate *validator.Validate
	out      io.Writer
}

func NewHandler(store *app.ContactStore, logger *slog.Logger, validate *validator.Validate, out io.Writer) *Handler {
	return &Handler{
		store:    store,
		logger:   logger,
		validate: validate,
		out:      out,
	}
}

type command struct {
	mutates bool
	run     func(h *Handler, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"list":   {run: (*Handler).list},
	"search": {run: (*Handler).search},
	"types":  {run: (*Handler).types},
	"add":    {mutates: true, run: (*Handler).add},
	"remove": {mutates: true, run: (*Handler).remove},
	"note":   {mutates: true, run: (*Handler).note},
	"rename": {mutates: true, run: (*Handler).rename},
	"phone":  {mutates: true, run: (*Handler).phone},
}

// Run executes args[0] with the remaining args as its flags.
func (h *Handler) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		h.usage()
		return fmt.Errorf("%w: no command given", ErrUsage)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		h.usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	logger := h.logger.With("command", args[0])

	// A load failure stops here so a corrupt file is never overwritten.
	if err := h.store.Load(ctx); err != nil {
		return fmt.Errorf("loading phonebook: %w", err)
	}
	if err := cmd.run(h, ctx, args[1:]); err != nil {
		return err
	}
	if !cmd.mutates {
		return nil
	}
	if err := h.store.Save(ctx); err != nil {
		return fmt.Errorf("saving phonebook: %w", err)
	}
	logger.DebugContext(ctx, "Command completed", "contacts", h.store.Len())
	return nil
}

func (h *Handler) usage() {
	fmt.Fprintln(h.out, `usage: phonebook <command> [flags]

commands:
  list                                  show all contacts
  search [-field name|phone] QUERY      show contacts matching QUERY
  add -name NAME [-phone NUM[:TYPE]]... [-note TEXT]
  remove -index N -yes                  delete the contact at N
  note -index N -text TEXT              replace the note of contact N
  rename -index N -name NAME            replace the name of contact N
  phone -index N -number NUM [-type T]  add a phone to contact N
  phone -index N -at I -number NUM [-type T]
                                        replace phone I of contact N
  phone -index N -remove I              delete phone I of contact N
  types                                 list phone types`)
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func (h *Handler) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, req any) error {
	if err := h.validate.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Validation failed", "error", err)
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func (h *Handler) list(_ context.Context, args []string) error {
	fs := newFlagSet("list", h.out)
	if err := h.parse(fs, args); err != nil {
		return err
	}
	contacts := h.store.List()
	indices := make([]int, len(contacts))
	for i := range contacts {
		indices[i] = i
	}
	h.render(contacts, indices)
	return nil
}

func (h *Handler) search(ctx context.Context, args []string) error {
	fs := newFlagSet("search", h.out)
	field := fs.String("field", "name", "field to search: name or phone")
	if err := h.parse(fs, args); err != nil {
		return err
	}
	req := SearchRequest{
		Field: strings.ToLower(strings.TrimSpace(*field)),
		Query: strings.Join(fs.Args(), " "),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return err
	}
	contacts := h.store.List()
	h.render(contacts, app.Filter(contacts, req.Query, app.ParseField(req.Field)))
	return nil
}

func (h *Handler) types(_ context.Context, _ []string) error {
	for _, pt := range domain.PhoneTypes() {
		fmt.Fprintf(h.out, "%-6s %s / %s\n", pt.String(), pt.Label(), pt.EnglishLabel())
	}
	return nil
}

func (h *Handler) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add", h.out)
	name := fs.String("name", "", "full name (required)")
	note := fs.String("note", "", "free-text note")
	var phones phoneList
	fs.Var(&phones, "phone", "phone as NUMBER or NUMBER:TYPE, repeatable")
	if err := h.parse(fs, args); err != nil {
		return err
	}

	req := AddContactRequest{
		FullName: strings.TrimSpace(*name),
		Phones:   phones,
		Note:     strings.TrimSpace(*note),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return err
	}

	c := domain.NewContact(req.FullName)
	for _, p := range req.Phones {
		c.AddPhone(p.Number, domain.ParsePhoneType(p.Type))
	}
	c.Note = req.Note
	h.store.Add(c)
	fmt.Fprintf(h.out, "added #%d %s\n", h.store.Len()-1, c.FullName)
	return nil
}

func (h *Handler) remove(ctx context.Context, args []string) error {
	fs := newFlagSet("remove", h.out)
	index := fs.Int("index", -1, "contact index")
	yes := fs.Bool("yes", false, "confirm removal")
	if err := h.parse(fs, args); err != nil {
		return err
	}
	if !*yes {
		return ErrConfirmationRequired
	}
	req := RemoveContactRequest{Index: *index, Confirmed: *yes}
	if err := h.validateRequest(ctx, req); err != nil {
		return err
	}
	c, ok := h.store.Get(req.Index)
	if !ok {
		fmt.Fprintf(h.out, "no contact #%d, nothing removed\n", req.Index)
		return nil
	}
	h.store.RemoveAt(req.Index)
	fmt.Fprintf(h.out, "removed #%d %s\n", req.Index, c.FullName)
	return nil
}

func (h *Handler) note(ctx context.Context, args []string) error {
	fs := newFlagSet("note", h.out)
	index := fs.Int("index", -1, "contact index")
	text := fs.String("text", "", "new note, empty clears it")
	if err := h.parse(fs, args); err != nil {
		return err
	}
	req := SetNoteRequest{Index: *index, Text: strings.TrimSpace(*text)}
	if err := h.validateRequest(ctx, req); err != nil {
		return err
	}
	c, ok := h.store.Get(req.Index)
	if !ok {
		return fmt.Errorf("contact #%d: %w", req.Index, domain.ErrContactNotFound)
	}
	c.Note = req.Text
	return h.store.Replace(req.Index, c)
}

func (h *Handler) rename(ctx context.Context, args []string) error {
	fs := newFlagSet("rename", h.out)
	index := fs.Int("index", -1, "contact index")
	name := fs.String("name", "", "new full name (required)")
	if err := h.parse(fs, args); err != nil {
		return err
	}
	req := RenameContactRequest{Index: *index, FullName: strings.TrimSpace(*name)}
	if err := h.validateRequest(ctx, req); err != nil {
		return err
	}
	c, ok := h.store.Get(req.Index)
	if !ok {
		return fmt.Errorf("contact #%d: %w", req.Index, domain.ErrContactNotFound)
	}
	c.FullName = req.FullName
	return h.store.Replace(req.Index, c)
}

func (h *Handler) phone(ctx context.Context, args []string) error {
	fs := newFlagSet("phone", h.out)
	index := fs.Int("index", -1, "contact index")
	number := fs.String("number", "", "phone number")
	phoneType := fs.String("type", "", "phone type, see the types command")
	at := fs.Int("at", -1, "replace the phone at this position instead of adding one")
	remove := fs.Int("remove", -1, "delete the phone at this position")
	if err := h.parse(fs, args); err != nil {
		return err
	}
	if *remove >= 0 {
		if *at >= 0 || *number != "" {
			return fmt.Errorf("%w: -remove cannot be combined with -at or -number", ErrUsage)
		}
		return h.removePhone(ctx, RemovePhoneRequest{Index: *index, At: *remove})
	}

	req := AddPhoneRequest{
		Index: *index,
		At:    *at,
		Phone: PhoneRequest{Number: strings.TrimSpace(*number), Type: strings.TrimSpace(*phoneType)},
	}
	if err := h.validateRequest(ctx, req); err != nil {
		return err
	}
	c, ok := h.store.Get(req.Index)
	if !ok {
		return fmt.Errorf("contact #%d: %w", req.Index, domain.ErrContactNotFound)
	}
	if req.At < 0 {
		c.AddPhone(req.Phone.Number, domain.ParsePhoneType(req.Phone.Type))
		h.logger.DebugContext(ctx, "Phone added", "full_name", c.FullName, "phones", c.PhonesAsString())
		return h.store.Replace(req.Index, c)
	}

	if req.At >= len(c.Phones) {
		return fmt.Errorf("contact #%d phone #%d: %w", req.Index, req.At, domain.ErrPhoneNotFound)
	}
	pt := c.Phones[req.At].Type
	if req.Phone.Type != "" {
		pt = domain.ParsePhoneType(req.Phone.Type)
	}
	c.SetPhone(req.At, domain.NewPhoneNumber(req.Phone.Number, pt))
	h.logger.DebugContext(ctx, "Phone replaced", "full_name", c.FullName, "at", req.At, "phones", c.PhonesAsString())
	return h.store.Replace(req.Index, c)
}

func (h *Handler) removePhone(ctx context.Context, req RemovePhoneRequest) error {
	if err := h.validateRequest(ctx, req); err != nil {
		return err
	}
	c, ok := h.store.Get(req.Index)
	if !ok {
		return fmt.Errorf("contact #%d: %w", req.Index, domain.ErrContactNotFound)
	}
	if !c.RemovePhone(req.At) {
		return fmt.Errorf("contact #%d phone #%d: %w", req.Index, req.At, domain.ErrPhoneNotFound)
	}
	h.logger.DebugContext(ctx, "Phone removed", "full_name", c.FullName, "at", req.At)
	return h.store.Replace(req.Index, c)
}

// render prints the contacts at indices as a table keyed by store index.
func (h *Handler) render(contacts []domain.Contact, indices []int) {
	if len(indices) == 0 {
		fmt.Fprintln(h.out, "no contacts")
		return
	}
	rows := make([][]string, 0, len(indices))
	for _, i := range indices {
		rows = append(rows, append([]string{strconv.Itoa(i)}, contacts[i].Columns()...))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(tableHeaders...).
		Rows(rows...)
	fmt.Fprintln(h.out, t.Render())
}

// phoneList collects repeated -phone flags.
type phoneList []PhoneRequest

func (p *phoneList) String() string {
	parts := make([]string, len(*p))
	for i, r := range *p {
		parts[i] = r.Number + ":" + r.Type
	}
	return strings.Join(parts, ",")
}

// Set parses NUMBER or NUMBER:TYPE. The last colon separates the type.
func (p *phoneList) Set(v string) error {
	number, phoneType := v, ""
	if i := strings.LastIndex(v, ":"); i >= 0 {
		number, phoneType = v[:i], v[i+1:]
	}
	*p = append(*p, PhoneRequest{Number: strings.TrimSpace(number), Type: strings.TrimSpace(phoneType)})
	return nil
}
