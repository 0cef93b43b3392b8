package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tuitiontrack/internal/export"
	"tuitiontrack/internal/models"
	"tuitiontrack/internal/service"
	"tuitiontrack/internal/storage"
)

const dateLayout = "2006-01-02"

var (
	// add-student flags
	nameFlag    string
	gradeFlag   string
	feeFlag     int64
	startFlag   string
	contactFlag string

	// record-payment flags
	monthFlag  string
	amountFlag int64
	modeFlag   string

	// payments flags
	outFlag string

	// unpaid flags
	unpaidMonthFlag string
)

var addStudentCmd = &cobra.Command{
	Use:   "add-student",
	Short: "Enroll a new student",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		if startFlag != "" {
			parsed, err := time.Parse(dateLayout, startFlag)
			if err != nil {
				fmt.Printf("Invalid start date %q, expected YYYY-MM-DD.\n", startFlag)
				return nil
			}
			start = parsed
		}

		student, err := svc.AddStudent(cmd.Context(), service.AddStudentInput{
			Name:       nameFlag,
			Grade:      gradeFlag,
			MonthlyFee: feeFlag,
			StartDate:  start,
			Contact:    contactFlag,
		})
		if err != nil {
			return renderError(err)
		}

		fmt.Printf("Added %s (id: %s, monthly fee: %d)\n", student.Name, student.ID, student.MonthlyFee)
		return nil
	},
}

var recordPaymentCmd = &cobra.Command{
	Use:   "record-payment <student>",
	Short: "Record a monthly fee payment for a student",
	Long: `Record a monthly fee payment. The student may be given by ID or by
exact name. The month defaults to the current month and the amount to
the student's monthly fee; both can be overridden with flags.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		student, err := resolveStudent(ctx, args[0])
		if err != nil {
			return renderError(err)
		}

		in, err := svc.DefaultPaymentInput(ctx, student.ID)
		if err != nil {
			return renderError(err)
		}
		if cmd.Flags().Changed("month") {
			in.Month = monthFlag
		}
		if cmd.Flags().Changed("amount") {
			in.Amount = amountFlag
		}
		if cmd.Flags().Changed("mode") {
			in.Mode = models.PaymentMode(modeFlag)
		}

		payment, err := svc.RecordPayment(ctx, in)
		if err != nil {
			return renderError(err)
		}

		fmt.Printf("Payment of %d for %s recorded for %s (%s).\n",
			payment.AmountPaid, student.Name, payment.Month, payment.Mode)
		return nil
	},
}

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "List enrolled students",
	RunE: func(cmd *cobra.Command, args []string) error {
		students, err := svc.ListStudents(cmd.Context())
		if err != nil {
			return renderError(err)
		}
		if len(students) == 0 {
			fmt.Println("No students yet. Add a student first.")
			return nil
		}

		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tGRADE\tMONTHLY FEE\tSTART DATE\tCONTACT")
		for _, s := range students {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				s.ID, s.Name, s.Grade, s.MonthlyFee, s.StartDate.Format(dateLayout), s.Contact)
		}
		return w.Flush()
	},
}

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "List all payments, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := svc.ListPayments(cmd.Context())
		if err != nil {
			return renderError(err)
		}
		if len(records) == 0 {
			fmt.Println("No payments recorded yet.")
			return nil
		}

		if outFlag != "" {
			if err := export.WritePaymentsCSV(outFlag, records); err != nil {
				return renderError(err)
			}
			fmt.Printf("Exported %d payment(s) to %s\n", len(records), outFlag)
			return nil
		}

		w := newTable()
		fmt.Fprintln(w, "NAME\tMONTH\tAMOUNT\tMODE\tDATE")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				r.StudentName, r.Month, r.AmountPaid, r.Mode, r.PaymentDate.Format(dateLayout))
		}
		return w.Flush()
	},
}

var unpaidCmd = &cobra.Command{
	Use:   "unpaid",
	Short: "List students who have not paid for a month",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		students, err := svc.ListStudents(ctx)
		if err != nil {
			return renderError(err)
		}
		if len(students) == 0 {
			fmt.Println("No students yet. Add a student first.")
			return nil
		}

		month := unpaidMonthFlag
		if month == "" {
			month = svc.CurrentPeriod()
		}

		unpaid, err := svc.UnpaidForPeriod(ctx, month)
		if err != nil {
			return renderError(err)
		}
		if len(unpaid) == 0 {
			fmt.Printf("All students have paid for %s.\n", month)
			return nil
		}

		fmt.Printf("Unpaid students for %s:\n", month)
		w := newTable()
		fmt.Fprintln(w, "NAME\tGRADE\tCONTACT")
		for _, s := range unpaid {
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, s.Grade, s.Contact)
		}
		return w.Flush()
	},
}

var totalCmd = &cobra.Command{
	Use:   "total",
	Short: "Show the all-time total collected",
	RunE: func(cmd *cobra.Command, args []string) error {
		total, err := svc.TotalCollected(cmd.Context())
		if err != nil {
			return renderError(err)
		}
		fmt.Printf("Total collected (all time): %d\n", total)
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <student>",
	Short: "Show a student's payment history and standing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		student, err := resolveStudent(ctx, args[0])
		if err != nil {
			return renderError(err)
		}

		sum, err := svc.StudentSummary(ctx, student.ID)
		if err != nil {
			return renderError(err)
		}

		fmt.Printf("Payment summary for %s\n", student.Name)
		if sum.MonthsPaid == 0 {
			fmt.Println("No payments recorded yet.")
		} else {
			w := newTable()
			fmt.Fprintln(w, "MONTH\tAMOUNT\tMODE\tDATE")
			for _, p := range sum.Payments {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					p.Month, p.AmountPaid, p.Mode, p.PaymentDate.Format(dateLayout))
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}

		fmt.Printf("Total paid: %d\n", sum.TotalPaid)
		fmt.Printf("Months paid: %d\n", sum.MonthsPaid)
		if sum.FullyPaid {
			fmt.Println("All payments are up to date.")
		} else {
			fmt.Printf("Pending months: %d\n", sum.PendingMonths)
		}
		return nil
	},
}

func init() {
	addStudentCmd.Flags().StringVar(&nameFlag, "name", "", "Student name (required)")
	addStudentCmd.Flags().StringVar(&gradeFlag, "grade", "", "Grade or class")
	addStudentCmd.Flags().Int64Var(&feeFlag, "fee", 0, "Monthly fee in whole units")
	addStudentCmd.Flags().StringVar(&startFlag, "start", "", "Start date YYYY-MM-DD (default: today)")
	addStudentCmd.Flags().StringVar(&contactFlag, "contact", "", "Contact info")

	recordPaymentCmd.Flags().StringVar(&monthFlag, "month", "", `Period label, e.g. "Nov 2025" (default: current month)`)
	recordPaymentCmd.Flags().Int64Var(&amountFlag, "amount", 0, "Amount paid (default: the student's monthly fee)")
	recordPaymentCmd.Flags().StringVar(&modeFlag, "mode", "", "Payment mode: Cash, UPI or Bank Transfer (default: Cash)")

	paymentsCmd.Flags().StringVar(&outFlag, "out", "", "Export to a CSV file instead of printing")

	unpaidCmd.Flags().StringVar(&unpaidMonthFlag, "month", "", "Period label to check (default: current month)")

	rootCmd.AddCommand(addStudentCmd)
	rootCmd.AddCommand(recordPaymentCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(paymentsCmd)
	rootCmd.AddCommand(unpaidCmd)
	rootCmd.AddCommand(totalCmd)
	rootCmd.AddCommand(summaryCmd)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

// resolveStudent accepts a student ID or an exact name. Name matching
// fails when two students share the name; the ID disambiguates.
func resolveStudent(ctx context.Context, ref string) (*models.Student, error) {
	student, err := svc.GetStudent(ctx, ref)
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, storage.ErrStudentNotFound) {
		return nil, err
	}

	students, err := svc.ListStudents(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*models.Student
	for _, s := range students {
		if s.Name == ref {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", storage.ErrStudentNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%d students named %q, use the student ID instead", len(matches), ref)
	}
}

// renderError turns expected domain failures into user-facing messages.
// Anything unexpected propagates to cobra and exits non-zero.
func renderError(err error) error {
	var vErr *service.ValidationError
	var dErr *service.DuplicatePaymentError
	switch {
	case errors.As(err, &vErr):
		fmt.Printf("Please check your input: %s.\n", vErr.Error())
		return nil
	case errors.As(err, &dErr):
		fmt.Printf("A payment for %s is already recorded, keeping the existing one.\n", dErr.Month)
		return nil
	case errors.Is(err, storage.ErrStudentNotFound):
		fmt.Println("Student not found. Use `tuitiontrack students` to list enrolled students.")
		return nil
	}
	return err
}
