package analysis

// Collect drives one function's analysis: build its CFG once, index
// every use, then walk its calls and returns emitting a Transformation
// for each approved candidate, in AST order.
func Collect(fn FuncDecl, builder CFGBuilder) []Transformation {
	cfg, ok := builder.Build(fn, CFGBuildOptions{
		AddImplicitDtors:  true,
		AddTemporaryDtors: true,
		AddInitializers:   true,
	})
	if !ok || cfg == nil {
		return nil
	}

	idx := BuildUseIndex(cfg)
	oracle := NewReachabilityOracle(cfg)

	var out []Transformation
	fn.Walk(
		func(call CallExpr) {
			for _, arg := range call.Args {
				e, decl, ok := IsFunctionArgCopy(arg)
				if !ok {
					continue
				}
				if !IsSafe(e, decl, ContextCallArg, idx, oracle) {
					continue
				}
				out = append(out, Transformation{
					Kind:   KindFunctionArgMove,
					Range:  e.Span(),
					Anchor: call.Span,
				})
			}
		},
		func(ret ReturnStmt) {
			if ret.Value == nil {
				return
			}
			e, decl, ok := IsReturnOfParameterCopy(ret.Value)
			if !ok {
				return
			}
			if !IsSafe(e, decl, ContextReturn, idx, oracle) {
				return
			}
			out = append(out, Transformation{
				Kind:   KindReturnValueMove,
				Range:  e.Span(),
				Anchor: ret.Span,
			})
		},
	)
	return out
}

// Run collects transformations across every function in the
// translation unit fe exposes, in declaration order.
func Run(fe Frontend) []Transformation {
	var all []Transformation
	fe.Functions(func(fn FuncDecl) bool {
		all = append(all, Collect(fn, fe)...)
		return true
	})
	return all
}
