package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/formwiz/internal/llm"
	"github.com/abhisek/formwiz/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the wizard and LLM event log",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent wizard events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		action, _ := cmd.Flags().GetString("action")

		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		events, err := db.EventRepo().QueryFormEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No wizard events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-18s  %-10s  %-8s  %s\n",
			"Seq", "Timestamp", "Action", "Category", "Form", "Detail")
		fmt.Println(strings.Repeat("─", 90))

		for _, e := range events {
			if action != "" && e.Action != action {
				continue
			}
			detail := e.Detail
			if detail == "" {
				detail = e.Route
			}
			fmt.Printf("%-5d  %-19s  %-18s  %-10s  %-8s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Action,
				e.CategoryID,
				e.FormID,
				truncate(detail, 40),
			)
		}
		return nil
	},
}

var eventsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "List recent LLM requests with token usage and cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		events, err := db.EventRepo().QueryLLMRequests(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %-9s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Cost", "OK")
		fmt.Println(strings.Repeat("─", 106))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			fmt.Printf("%-5d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %-9s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				costOf(e.LLMRequestEventData),
				ok,
			)
		}
		return nil
	},
}

var eventsViewCmd = &cobra.Command{
	Use:   "view <seq>",
	Short: "View the full request and response of an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sequence %q: %w", args[0], err)
		}

		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		found, err := db.EventRepo().QueryLLMRequests(cmd.Context(), store.QueryOpts{After: seq - 1, Before: seq + 1, Limit: 1})
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if len(found) == 0 {
			return fmt.Errorf("LLM event %d not found", seq)
		}
		e := found[0]

		sep := strings.Repeat("─", 60)

		fmt.Printf("Seq:       %d\n", e.Sequence)
		fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider:  %s\n", e.Provider)
		fmt.Printf("Model:     %s\n", e.Model)
		fmt.Printf("Purpose:   %s\n", e.Purpose)
		fmt.Printf("Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Printf("Cost:      %s\n", costOf(e.LLMRequestEventData))
		fmt.Printf("Latency:   %dms\n", e.LatencyMs)
		fmt.Printf("Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", e.ErrorMessage)
		}

		for _, section := range []struct{ title, body string }{
			{"REQUEST", e.RequestBody},
			{"RESPONSE", e.ResponseBody},
		} {
			fmt.Println()
			fmt.Println(sep)
			fmt.Println(section.title)
			fmt.Println(sep)
			if section.body == "" {
				fmt.Println("(not captured)")
				continue
			}
			fmt.Println(section.body)
		}
		return nil
	},
}

var eventsCostCmd = &cobra.Command{
	Use:   "cost",
	Short: "Show LLM token usage and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		events, err := db.EventRepo().QueryLLMRequests(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		usage := usageByModel(events)

		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 76))

		var total float64
		var unknown []string
		for _, u := range usage {
			price, ok := llm.LookupPrice(u.model)
			if !ok {
				unknown = append(unknown, u.model)
				fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
					truncate(u.model, 32), u.calls, u.InputTokens, u.OutputTokens, "?")
				continue
			}
			c := price.Cost(u.Usage)
			total += c
			fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
				truncate(u.model, 32), u.calls, u.InputTokens, u.OutputTokens, formatCost(c))
		}

		fmt.Println(strings.Repeat("─", 76))
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
		if len(unknown) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

type modelUsage struct {
	model string
	calls int
	llm.Usage
}

// usageByModel sums token usage per model, busiest model first.
func usageByModel(events []store.LLMRequestRecord) []modelUsage {
	idx := map[string]int{}
	var out []modelUsage
	for _, e := range events {
		i, ok := idx[e.Model]
		if !ok {
			i = len(out)
			idx[e.Model] = i
			out = append(out, modelUsage{model: e.Model})
		}
		out[i].calls++
		out[i].InputTokens += e.InputTokens
		out[i].OutputTokens += e.OutputTokens
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].calls > out[b].calls })
	return out
}

func costOf(e store.LLMRequestEventData) string {
	price, ok := llm.LookupPrice(e.Model)
	if !ok {
		return "?"
	}
	return formatCost(price.Cost(llm.Usage{InputTokens: e.InputTokens, OutputTokens: e.OutputTokens}))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	eventsListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsListCmd.Flags().String("action", "", "Filter by action (e.g. form_completed, blocked)")
	eventsLLMCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsLLMCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. review)")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsLLMCmd)
	eventsCmd.AddCommand(eventsViewCmd)
	eventsCmd.AddCommand(eventsCostCmd)
}
