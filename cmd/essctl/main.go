package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/hros/ess-gateway/internal/client"
)

// essctl is an interactive console over the gateway API, mostly for poking at
// a running gateway during development. It sits on the same cached data layer
// the portal uses, so cache and invalidation behaviour can be observed live.
func main() {
	baseURL := flag.String("gateway", "http://localhost:8080", "gateway base URL")
	flag.Parse()

	c := client.New(*baseURL, client.Throw)

	color.Cyan("ess console, connected to %s", *baseURL)
	fmt.Println("Type 'help' for the command list.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("ess> ")
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			break
		}

		runCommand(c, fields[0], fields[1:])
	}
}

func runCommand(c *client.Client, cmd string, args []string) {
	ctx := context.Background()

	switch cmd {
	case "help":
		printHelp()
	case "login":
		if len(args) != 2 {
			color.Red("usage: login <employee-id> <password>")
			return
		}
		user, err := c.Login(ctx, args[0], args[1])
		if err != nil {
			color.Red("login failed: %v", err)
			return
		}
		color.Green("Logged in as %s (%s)", user.Name, user.EmployeeID)
	case "logout":
		if err := c.Logout(ctx); err != nil {
			color.Yellow("logout: %v", err)
		}
		color.Green("Logged out")
	case "user":
		printQuery(c, ctx, "/api/auth/user")
	case "stats", "status":
		printQuery(c, ctx, "/api/dashboard/stats")
	case "attendance":
		printQuery(c, ctx, "/api/attendance")
	case "today":
		printQuery(c, ctx, "/api/attendance/today")
	case "checkin":
		printMutation(c, ctx, "/api/attendance/checkin", nil,
			"/api/attendance/today", "/api/dashboard/stats")
	case "checkout":
		printMutation(c, ctx, "/api/attendance/checkout", nil,
			"/api/attendance/today", "/api/dashboard/stats")
	case "leave":
		printQuery(c, ctx, "/api/leave/requests")
	case "balances":
		printQuery(c, ctx, "/api/leave/balances")
	case "apply":
		if len(args) < 3 {
			color.Red("usage: apply <type> <start> <end> [reason...]")
			return
		}
		printMutation(c, ctx, "/api/leave/apply", map[string]string{
			"type":      args[0],
			"startDate": args[1],
			"endDate":   args[2],
			"reason":    strings.Join(args[3:], " "),
		}, "/api/leave/requests")
	case "payroll":
		printQuery(c, ctx, "/api/payroll")
	case "documents":
		printQuery(c, ctx, "/api/documents")
	case "notices":
		printQuery(c, ctx, "/api/notices")
	case "holidays":
		printQuery(c, ctx, "/api/holidays")
	case "refresh":
		if len(args) == 0 {
			color.Red("usage: refresh <path...>")
			return
		}
		c.Invalidate(args...)
		color.Green("Invalidated %d path(s)", len(args))
	default:
		color.Red("unknown command %q, try 'help'", cmd)
	}
}

func printQuery(c *client.Client, ctx context.Context, path string) {
	body, err := c.Query(ctx, path)
	if err != nil {
		color.Red("%s: %v", path, err)
		return
	}

	printJSON(body)
}

func printMutation(c *client.Client, ctx context.Context, path string, payload any, invalidate ...string) {
	body, err := c.Mutate(ctx, "POST", path, payload, invalidate...)
	if err != nil {
		color.Red("%s: %v", path, err)
		return
	}

	printJSON(body)
}

func printJSON(body json.RawMessage) {
	var pretty map[string]any
	if err := json.Unmarshal(body, &pretty); err == nil {
		indented, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(indented))
		return
	}

	var list []any
	if err := json.Unmarshal(body, &list); err == nil {
		indented, _ := json.MarshalIndent(list, "", "  ")
		fmt.Println(string(indented))
		return
	}

	fmt.Println(string(body))
}

func printHelp() {
	fmt.Println(`Commands:
  login <id> <password>       authenticate against the gateway
  logout                      end the session
  user                        current session user
  stats                       dashboard stats
  attendance | today          attendance history / today's record
  checkin | checkout          stamp attendance
  leave | balances            leave requests / balances
  apply <type> <start> <end> [reason]
                              submit a leave application
  payroll | documents         payroll history / documents
  notices | holidays          company notices / holiday calendar
  refresh <path...>           drop cached paths
  quit`)
}
