package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/client/api"
	"github.com/m04kA/SMC-DetailingService/internal/client/calendar"
	"github.com/m04kA/SMC-DetailingService/internal/client/form"
	"github.com/m04kA/SMC-DetailingService/internal/client/reports"
	"github.com/m04kA/SMC-DetailingService/internal/client/session"
	"github.com/m04kA/SMC-DetailingService/internal/client/status"
	"github.com/m04kA/SMC-DetailingService/internal/config"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/orderform"
	"github.com/m04kA/SMC-DetailingService/internal/pivot"
	"github.com/m04kA/SMC-DetailingService/pkg/logger"
)

const usage = `Usage: detailingctl [-config path] <command> [flags]

Commands:
  login     -u <username> -p <password>
  logout
  whoami
  calendar  [-date YYYY-MM-DD] [-master id] [-status STATUS]
  order     -id <id>
  edit      -id <id> [-client name] [-phone phone] [-cost value] [-at RFC3339]
  move      -id <id> -at RFC3339
  status    -id <id> -to STATUS [-master id]
  weekly    [-date YYYY-MM-DD] [-xlsx file]
  detail    [-master id] [-date YYYY-MM-DD] [-xlsx file]
`

// app зависимости команд CLI
type app struct {
	client  *api.Client
	session *session.Session
	log     *logger.Logger
	out     io.Writer
}

func main() {
	configPath := flag.String("config", envOr("DETAILING_CONFIG", "config.toml"), "path to config.toml")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.Logs.Level)
	if err != nil {
		level = logger.LevelInfo
	}
	log := logger.NewWithWriter(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(cfg.Client.APIURL, time.Duration(cfg.Client.Timeout)*time.Second, nil, log)
	sess := session.NewSession(session.NewFileStorage(cfg.Client.SessionFile), client, log)
	client.SetTokenSource(sess)

	a := &app{client: client, session: sess, log: log, out: os.Stdout}
	if err := a.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printFieldErrors(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.session.Logout()
		return nil
	}

	if !a.session.Restore(ctx) {
		return errors.New("not logged in, run: detailingctl login -u <username> -p <password>")
	}

	switch command {
	case "whoami":
		return a.whoami()
	case "calendar":
		return a.calendar(ctx, args)
	case "order":
		return a.order(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "move":
		return a.move(ctx, args)
	case "status":
		return a.changeStatus(ctx, args)
	case "weekly":
		return a.weekly(ctx, args)
	case "detail":
		return a.detail(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.client.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	if err := a.session.Login(res.Token, res.User); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", res.User.Username, roleList(res.User))
	return nil
}

func (a *app) whoami() error {
	u := a.session.User()
	fmt.Fprintf(a.out, "%s %s (%s), roles: %s\n", u.Username, u.FullName(), u.Phone, roleList(u))
	return nil
}

func (a *app) calendar(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("calendar", flag.ContinueOnError)
	date := fs.String("date", "", "any day of the week, YYYY-MM-DD")
	master := fs.Int64("master", 0, "master id")
	statusFlag := fs.String("status", "", "order status")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pivotDate, err := parseDate(*date)
	if err != nil {
		return err
	}

	view := calendar.NewView(a.client, a.session.User(), pivotDate, a.log)
	if *master > 0 {
		if err := view.SetMaster(master); err != nil {
			return err
		}
	}
	if *statusFlag != "" && *statusFlag != domain.StatusFilterAll {
		st := domain.OrderStatus(strings.ToUpper(*statusFlag))
		if err := view.SetStatus(&st); err != nil {
			return err
		}
	}

	events, err := view.Refresh(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tStart\tEnd\tStatus\tTitle\tPhone")
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Start.Format("Mon 02.01 15:04"), e.End.Format("15:04"), e.Status, e.Title, e.ClientPhone)
	}
	return w.Flush()
}

func (a *app) order(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	id := fs.Int64("id", 0, "order id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	o, err := a.client.GetOrder(ctx, *id)
	if err != nil {
		return err
	}

	brand := "-"
	if o.CarBrand != nil {
		brand = o.CarBrand.Name
	}
	fmt.Fprintf(a.out, "Order #%d [%s]\n", o.ID, o.Status)
	fmt.Fprintf(a.out, "Client: %s, %s\n", o.ClientName, o.ClientPhone)
	fmt.Fprintf(a.out, "Car: %s %s\n", brand, o.VIN)
	fmt.Fprintf(a.out, "Date: %s, cost: %.2f\n", o.ExecutionDate.Format(domain.DateTimeFormat), o.OrderCost)

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Work\tCost\tMaster\tPercent\tEarning")
	for _, work := range o.Works {
		if len(work.Assignments) == 0 {
			fmt.Fprintf(w, "%s\t%.2f\t-\t-\t-\n", work.WorkType.Name, work.Cost)
			continue
		}
		for _, as := range work.Assignments {
			fmt.Fprintf(w, "%s\t%.2f\t%s\t%.0f%%\t%.2f\n",
				work.WorkType.Name, work.Cost, as.Master.FullName(), as.SalaryPercent, as.Earning(work.Cost))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	actions := status.Actions(o.Status)
	if len(actions) > 0 {
		labels := make([]string, 0, len(actions))
		for _, act := range actions {
			labels = append(labels, fmt.Sprintf("%s (%s)", act.Label, act.Status))
		}
		fmt.Fprintf(a.out, "Actions: %s\n", strings.Join(labels, ", "))
	}
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	id := fs.Int64("id", 0, "order id")
	client := fs.String("client", "", "client name")
	phone := fs.String("phone", "", "client phone")
	cost := fs.Float64("cost", -1, "order cost")
	at := fs.String("at", "", "execution date, RFC3339")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var executionDate *time.Time
	if *at != "" {
		t, err := time.Parse(domain.DateTimeFormat, *at)
		if err != nil {
			return fmt.Errorf("invalid -at: %w", err)
		}
		executionDate = &t
	}

	f, err := form.Open(ctx, a.client, *id, a.log)
	if err != nil {
		return err
	}
	defer f.Close()

	err = f.Update(func(d *orderform.Draft) {
		if *client != "" {
			d.ClientName = *client
		}
		if *phone != "" {
			d.ClientPhone = *phone
		}
		if *cost >= 0 {
			c := *cost
			d.OrderCost = &c
		}
		if executionDate != nil {
			d.ExecutionDate = executionDate
		}
	})
	if err != nil {
		return err
	}

	saved, err := f.Submit()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order #%d saved\n", saved.ID)
	return nil
}

func (a *app) move(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	id := fs.Int64("id", 0, "order id")
	at := fs.String("at", "", "new execution date, RFC3339")
	if err := fs.Parse(args); err != nil {
		return err
	}

	target, err := time.Parse(domain.DateTimeFormat, *at)
	if err != nil {
		return fmt.Errorf("invalid -at: %w", err)
	}

	o, err := a.client.GetOrder(ctx, *id)
	if err != nil {
		return err
	}

	view := calendar.NewView(a.client, a.session.User(), o.ExecutionDate, a.log)
	if _, err := view.Refresh(ctx); err != nil {
		return err
	}

	event, err := view.Move(ctx, *id, target)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order #%d moved to %s\n", event.ID, event.Start.Format(domain.DateTimeFormat))
	return nil
}

func (a *app) changeStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	id := fs.Int64("id", 0, "order id")
	to := fs.String("to", "", "target status")
	master := fs.Int64("master", 0, "master performing the transition")
	if err := fs.Parse(args); err != nil {
		return err
	}

	next, err := domain.ParseOrderStatus(strings.ToUpper(*to))
	if err != nil {
		return err
	}

	o, err := a.client.GetOrder(ctx, *id)
	if err != nil {
		return err
	}

	var masterID *int64
	if *master > 0 {
		masterID = master
	}

	updated, err := status.NewChanger(a.client, a.session.User(), a.log).Change(ctx, o, next, masterID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order #%d: %s -> %s\n", o.ID, o.Status, updated.Status)
	return nil
}

func (a *app) weekly(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("weekly", flag.ContinueOnError)
	date := fs.String("date", "", "any day of the week, YYYY-MM-DD")
	xlsx := fs.String("xlsx", "", "export to .xlsx file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pivotDate, err := parseDate(*date)
	if err != nil {
		return err
	}

	table, err := reports.New(a.client, a.session.User(), a.log).Weekly(ctx, pivotDate)
	if err != nil {
		return err
	}
	return a.output(table, *xlsx)
}

func (a *app) detail(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("detail", flag.ContinueOnError)
	master := fs.Int64("master", 0, "master id (default: current user)")
	date := fs.String("date", "", "any day of the week, YYYY-MM-DD")
	xlsx := fs.String("xlsx", "", "export to .xlsx file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pivotDate, err := parseDate(*date)
	if err != nil {
		return err
	}

	table, err := reports.New(a.client, a.session.User(), a.log).Detail(ctx, *master, pivotDate)
	if err != nil {
		return err
	}
	return a.output(table, *xlsx)
}

// output печатает таблицу или сохраняет ее в .xlsx
func (a *app) output(table *pivot.Table, xlsxPath string) error {
	if xlsxPath == "" {
		return pivot.WriteText(a.out, table)
	}

	data, err := reports.ExportXLSX(table)
	if err != nil {
		return err
	}
	if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", xlsxPath, err)
	}
	fmt.Fprintf(a.out, "Saved %s\n", xlsxPath)
	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation(domain.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// printFieldErrors печатает ошибки полей формы (локальные или от сервера)
func printFieldErrors(w io.Writer, err error) {
	fields := api.FieldErrors(err)
	var local orderform.Errors
	if errors.As(err, &local) {
		fields = local
	}
	if len(fields) == 0 {
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, fields[k])
	}
}

func roleList(u *domain.User) string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Name))
	}
	return strings.Join(names, ", ")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
