//go:build scenario

package scenario

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// Scenario is a scripted engine lifecycle loaded from a lua file.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scripted action or expectation.
type Step struct {
	Kind string
	Args map[string]any
}

func loadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerScenarioType(state)
	registerScenarioConstructor(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "rolls", Function: scenarioRolls},
	{Name: "deposit", Function: tableStep("deposit")},
	{Name: "buy", Function: tableStep("buy")},
	{Name: "play", Function: tableStep("play")},
	{Name: "reinit", Function: tableStep("reinit")},
	{Name: "redeem", Function: tableStep("redeem")},
	{Name: "burn", Function: tableStep("burn")},
	{Name: "admin_mint", Function: tableStep("admin_mint")},
	{Name: "withdraw_all", Function: tableStep("withdraw_all")},
	{Name: "expect_level", Function: tableStep("expect_level")},
	{Name: "expect_throw", Function: tableStep("expect_throw")},
	{Name: "expect_balance", Function: tableStep("expect_balance")},
	{Name: "expect_journal", Function: tableStep("expect_journal")},
	{Name: "expect_error", Function: tableStep("expect_error")},
}

// tableStep records a step whose single argument is an options table.
func tableStep(kind string) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		appendStep(scenario, kind, optionalTable(state, 2))
		return 0
	}
}

// scenarioRolls schedules die faces: s:rolls{1, 6, 1, 6}.
func scenarioRolls(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	value := luaToGo(state, 2)
	faces, ok := value.([]any)
	if !ok {
		lua.ArgumentError(state, 2, "array of die faces expected")
		return 0
	}
	appendStep(scenario, "rolls", map[string]any{"faces": faces})
	return 0
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) {
	if scenario == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToGo(state, index)
	default:
		return nil
	}
}

func tableToGo(state *lua.State, index int) any {
	if state.TypeOf(index) != lua.TypeTable {
		return nil
	}

	index = state.AbsIndex(index)
	isArray := true
	maxIndex := 0
	count := 0
	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		result := make([]any, 0, maxIndex)
		for i := 1; i <= maxIndex; i++ {
			state.RawGetInt(index, i)
			result = append(result, luaToGo(state, -1))
			state.Pop(1)
		}
		return result
	}

	return tableToMap(state, index)
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
