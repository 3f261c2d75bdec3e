package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unihub/admin-console/internal/counter"
	"github.com/unihub/admin-console/internal/gateway"
	"github.com/unihub/admin-console/internal/models"
	"github.com/unihub/admin-console/internal/roster"
	"github.com/unihub/admin-console/internal/service"
	"github.com/unihub/admin-console/internal/status"
	"github.com/unihub/admin-console/pkg/config"
	"github.com/unihub/admin-console/pkg/export"
	"github.com/unihub/admin-console/pkg/logger"
	"github.com/unihub/admin-console/pkg/metrics"
)

const usage = `usage: admin-console <command> [flags]

commands:
  students         list the student roster
  lecturers        list the lecturer roster
  users            list every account
  create-user      register a new account
  activate         reactivate an account
  deactivate       deactivate an account
  announcements    list announcements
  announce         publish an announcement
  announce-update  replace an announcement
  announce-delete  remove an announcement
  export           write a roster to CSV or PDF
  serve            run the local status server
  watch            live aggregate view
`

type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	client   *gateway.Client
	validate *validator.Validate
	recorder *metrics.Recorder
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	recorder := metrics.NewRecorder()
	a := &app{
		cfg:      cfg,
		logger:   logr,
		client:   gateway.New(cfg.API, logr, gateway.WithRecorder(recorder)),
		validate: validator.New(),
		recorder: recorder,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "students":
		return a.listRoster(ctx, models.RoleStudent, args)
	case "lecturers":
		return a.listRoster(ctx, models.RoleLecturer, args)
	case "users":
		return a.listUsers(ctx)
	case "create-user":
		return a.createUser(ctx, args)
	case "activate":
		return a.setActive(ctx, args, true)
	case "deactivate":
		return a.setActive(ctx, args, false)
	case "announcements":
		return a.listAnnouncements(ctx)
	case "announce":
		return a.announce(ctx, args)
	case "announce-update":
		return a.announceUpdate(ctx, args)
	case "announce-delete":
		return a.announceDelete(ctx, args)
	case "export":
		return a.exportRoster(ctx, args)
	case "serve":
		return a.serve(ctx)
	case "watch":
		return a.watch(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

type viewFlags struct {
	search string
	status string
	sort   string
	dir    string
}

func bindViewFlags(fs *flag.FlagSet) *viewFlags {
	vf := &viewFlags{}
	fs.StringVar(&vf.search, "search", "", "case-insensitive substring filter")
	fs.StringVar(&vf.status, "status", "all", "status filter: all, active or inactive")
	fs.StringVar(&vf.sort, "sort", roster.FieldFirstName, "sort column: f_name, l_name, email, nic, contact, dob or role_id")
	fs.StringVar(&vf.dir, "dir", "asc", "sort direction: asc or desc")
	return vf
}

func (vf *viewFlags) apply(svc *service.RosterService) {
	svc.Search(vf.search)
	svc.FilterStatus(roster.StatusFilter(vf.status))
	svc.SetSort(vf.sort, roster.SortDirection(vf.dir))
}

func (a *app) rosterService(role models.Role) *service.RosterService {
	return service.NewRosterService(role, a.client, a.validate, a.logger,
		service.WithSuccessTTL(a.cfg.Messages.SuccessTTL))
}

func (a *app) listRoster(ctx context.Context, role models.Role, args []string) error {
	fs := flag.NewFlagSet(strings.ToLower(string(role)), flag.ExitOnError)
	vf := bindViewFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := a.rosterService(role)
	vf.apply(svc)
	if err := svc.Refresh(ctx); err != nil {
		return fmt.Errorf("%s", svc.Error())
	}

	printRoster(svc.Visible(), svc.Aggregates())
	return nil
}

func printRoster(records []models.UserRecord, agg roster.Aggregates) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USER ID\tNAME\tEMAIL\tNIC\tCONTACT\tROLE ID\tSTATUS")
	for _, rec := range records {
		status := "inactive"
		if rec.IsActive {
			status = "active"
		}
		name := strings.TrimSpace(rec.FirstName + " " + rec.LastName)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.UserID, name, rec.Email, rec.NationalID, rec.Contact, rec.RoleSpecificID(), status)
	}
	w.Flush()
	fmt.Printf("\n%d shown | %d total, %d active, %d inactive\n",
		len(records), agg.Total, agg.Active, agg.Inactive)
}

func (a *app) listUsers(ctx context.Context) error {
	records, err := a.client.FetchUsers(ctx)
	if err != nil {
		return err
	}
	store := roster.NewStore(roster.MissingInactive)
	store.Replace(records)
	printRoster(store.Records(), store.Aggregates())
	return nil
}

func (a *app) createUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	req := service.CreateUserRequest{}
	fs.StringVar(&req.FirstName, "first-name", "", "first name (required)")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	fs.StringVar(&req.Email, "email", "", "email address (required)")
	fs.StringVar(&req.NationalID, "nic", "", "national ID (required)")
	fs.StringVar(&req.Address, "address", "", "postal address")
	fs.StringVar(&req.Contact, "contact", "", "contact number (required)")
	fs.StringVar(&req.DateOfBirth, "dob", "", "date of birth, YYYY-MM-DD (required)")
	fs.StringVar(&req.Role, "role", "", "STUDENT or LECTURER (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.Role = strings.ToUpper(req.Role)

	svc := a.rosterService(models.Role(req.Role))
	if err := svc.CreateUser(ctx, req); err != nil {
		return fmt.Errorf("%s", svc.Error())
	}
	fmt.Println(svc.Success())
	return nil
}

func (a *app) setActive(ctx context.Context, args []string, active bool) error {
	name := "deactivate"
	if active {
		name = "activate"
	}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var id, role string
	fs.StringVar(&id, "id", "", "user ID (required)")
	fs.StringVar(&role, "role", "STUDENT", "STUDENT or LECTURER")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("-id is required")
	}

	svc := a.rosterService(models.Role(strings.ToUpper(role)))
	if err := svc.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("%s", svc.Error())
	}
	fmt.Println(svc.Success())
	return nil
}

func (a *app) announcementService() *service.AnnouncementService {
	return service.NewAnnouncementService(a.client, a.validate, a.logger,
		service.WithAnnouncementSuccessTTL(a.cfg.Messages.SuccessTTL))
}

func (a *app) listAnnouncements(ctx context.Context) error {
	svc := a.announcementService()
	if err := svc.Refresh(ctx); err != nil {
		return fmt.Errorf("%s", svc.Error())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTOPIC\tDATE\tTIME\tAUDIENCE\tATTACHMENTS")
	for _, rec := range svc.Records() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID, rec.Topic, rec.Date, rec.Time, rec.Audience, strings.Join(rec.Attachments, ", "))
	}
	return w.Flush()
}

func bindAnnouncementFlags(fs *flag.FlagSet) (*service.AnnouncementRequest, *string) {
	req := &service.AnnouncementRequest{}
	fs.StringVar(&req.Topic, "topic", "", "announcement topic (required)")
	fs.StringVar(&req.Description, "description", "", "announcement body (required)")
	fs.StringVar(&req.Date, "date", "", "date, YYYY-MM-DD (required)")
	fs.StringVar(&req.Time, "time", "", "time, HH:MM or HH:MM:SS (required)")
	fs.StringVar(&req.Audience, "type", "", "audience: student or teacher (required)")
	attachments := fs.String("attachments", "", "comma-separated attachment names")
	return req, attachments
}

func (a *app) announce(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("announce", flag.ExitOnError)
	req, attachments := bindAnnouncementFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.Attachments = models.SplitAttachments(*attachments)

	svc := a.announcementService()
	if err := svc.Create(ctx, *req); err != nil {
		return fmt.Errorf("%s", svc.Error())
	}
	fmt.Println(svc.Success())
	return nil
}

func (a *app) announceUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("announce-update", flag.ExitOnError)
	var id string
	fs.StringVar(&id, "id", "", "announcement ID (required)")
	req, attachments := bindAnnouncementFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("-id is required")
	}
	req.Attachments = models.SplitAttachments(*attachments)

	svc := a.announcementService()
	if err := svc.Refresh(ctx); err != nil {
		return fmt.Errorf("%s", svc.Error())
	}
	if err := svc.Update(ctx, id, *req); err != nil {
		return fmt.Errorf("%s", svc.Error())
	}
	fmt.Println(svc.Success())
	return nil
}

func (a *app) announceDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("announce-delete", flag.ExitOnError)
	var id string
	fs.StringVar(&id, "id", "", "announcement ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("-id is required")
	}

	svc := a.announcementService()
	if err := svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s", svc.Error())
	}
	fmt.Println(svc.Success())
	return nil
}

func (a *app) exportRoster(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var role, format, out string
	fs.StringVar(&role, "role", "STUDENT", "STUDENT or LECTURER")
	fs.StringVar(&format, "format", "csv", "csv or pdf")
	fs.StringVar(&out, "out", "", "output path (defaults into EXPORT_DIR)")
	vf := bindViewFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := a.rosterService(models.Role(strings.ToUpper(role)))
	vf.apply(svc)
	if err := svc.Refresh(ctx); err != nil {
		return fmt.Errorf("%s", svc.Error())
	}

	table := export.RosterTable(svc.Role(), svc.Visible(), svc.Aggregates())

	var data []byte
	var err error
	switch format {
	case "csv":
		data, err = export.NewCSVExporter().Render(table)
	case "pdf":
		data, err = export.NewPDFExporter().Render(table)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}

	if out == "" {
		if err := os.MkdirAll(a.cfg.Export.Dir, 0o755); err != nil {
			return err
		}
		out = filepath.Join(a.cfg.Export.Dir,
			fmt.Sprintf("%s-roster-%s.%s", strings.ToLower(role), time.Now().Format("20060102-150405"), format))
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %d rows to %s\n", len(table.Rows), out)
	return nil
}

func (a *app) serve(ctx context.Context) error {
	students := a.rosterService(models.RoleStudent)
	lecturers := a.rosterService(models.RoleLecturer)

	refresh := func() {
		if err := students.Refresh(ctx); err != nil {
			a.logger.Warn("student roster refresh failed", zap.Error(err))
		}
		if err := lecturers.Refresh(ctx); err != nil {
			a.logger.Warn("lecturer roster refresh failed", zap.Error(err))
		}
	}
	refresh()

	go func() {
		ticker := time.NewTicker(a.cfg.Watch.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()

	srv := status.New(a.logger, a.recorder, map[string]status.RosterSource{
		"students":  students,
		"lecturers": lecturers,
	})
	return srv.Run(ctx, a.cfg.Status.Port)
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var role string
	fs.StringVar(&role, "role", "STUDENT", "STUDENT or LECTURER")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := a.rosterService(models.Role(strings.ToUpper(role)))
	total, active, inactive := &counter.Counter{}, &counter.Counter{}, &counter.Counter{}

	refresh := func() {
		if err := svc.Refresh(ctx); err != nil {
			a.logger.Warn("roster refresh failed", zap.Error(err))
			return
		}
		agg := svc.Aggregates()
		total.SetTarget(agg.Total)
		active.SetTarget(agg.Active)
		inactive.SetTarget(agg.Inactive)
	}
	refresh()

	go func() {
		ticker := time.NewTicker(a.cfg.Watch.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()

	total.Run(ctx, a.cfg.Watch.TickInterval, func(tv int) {
		fmt.Printf("\r%s roster: total %4d | active %4d | inactive %4d ",
			strings.ToLower(role), tv, active.Step(), inactive.Step())
	})
	fmt.Println()
	return nil
}
