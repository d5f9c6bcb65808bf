package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/symcanon"
)

type simplifyOutput struct {
	Expr   string                 `json:"expr"`
	Result string                 `json:"result"`
	LaTeX  string                 `json:"latex,omitempty"`
	RPN    string                 `json:"rpn,omitempty"`
	Tree   map[string]interface{} `json:"tree,omitempty"`
}

func newSimplifyCmd(a *app) *cobra.Command {
	var (
		vars      []string
		showLaTeX bool
		showRPN   bool
		jsonOut   bool
	)
	c := &cobra.Command{
		Use:   "simplify EXPR",
		Short: "Canonicalize a single expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.canon.CanonicalizeExpr(args[0], a.variables(vars))
			if err != nil {
				return err
			}
			a.logger.Debug("canonicalized", zap.String("expr", args[0]), zap.Stringer("result", e))

			out := cmd.OutOrStdout()
			if jsonOut {
				res := simplifyOutput{Expr: args[0], Result: e.String(), Tree: symcanon.TreeJSON(e)}
				if showLaTeX {
					res.LaTeX = e.LaTeX()
				}
				if showRPN {
					res.RPN = symcanon.ToRPN(e)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			if !showLaTeX && !showRPN {
				printResult(out, "", e.String())
				return nil
			}
			printResult(out, "result", e.String())
			if showLaTeX {
				printResult(out, "latex", e.LaTeX())
			}
			if showRPN {
				printResult(out, "rpn", symcanon.ToRPN(e))
			}
			return nil
		},
	}
	c.Flags().StringSliceVar(&vars, "vars", nil, "comma-separated variable names (default: configured variables)")
	c.Flags().BoolVar(&showLaTeX, "latex", false, "also print the LaTeX rendering")
	c.Flags().BoolVar(&showRPN, "rpn", false, "also print the postfix rendering")
	c.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	return c
}
