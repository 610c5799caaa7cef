package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Scenario is a replayable sequence of pool operations. Assets, actors and
// pools are referred to by name and mapped onto deterministic refs.
type Scenario struct {
	Assets []string                     `mapstructure:"assets"`
	Actors map[string]map[string]uint64 `mapstructure:"actors"`
	Pools  []PoolSpec                   `mapstructure:"pools"`
	Steps  []Step                       `mapstructure:"steps"`
}

// PoolSpec describes a pool created before the first step runs.
type PoolSpec struct {
	Name       string `mapstructure:"name"`
	AssetA     string `mapstructure:"asset_a"`
	AssetB     string `mapstructure:"asset_b"`
	Salt       uint8  `mapstructure:"salt"`
	FeeRateBps uint64 `mapstructure:"fee_rate_bps"`
	Admin      string `mapstructure:"admin"`
}

// Step is one operation. Only the fields its op reads need to be set.
type Step struct {
	Op          string `mapstructure:"op"`
	Pool        string `mapstructure:"pool"`
	Actor       string `mapstructure:"actor"`
	AmountA     uint64 `mapstructure:"amount_a"`
	AmountB     uint64 `mapstructure:"amount_b"`
	MinA        uint64 `mapstructure:"min_a"`
	MinB        uint64 `mapstructure:"min_b"`
	LPAmount    uint64 `mapstructure:"lp_amount"`
	Direction   string `mapstructure:"direction"`
	AmountIn    uint64 `mapstructure:"amount_in"`
	MinOut      uint64 `mapstructure:"min_out"`
	FeeRateBps  uint64 `mapstructure:"fee_rate_bps"`
	NewAdmin    string `mapstructure:"new_admin"`
	ExpectError string `mapstructure:"expect_error"`
}

// Scenario operations
const (
	OpAddInitialLiquidity = "add_initial_liquidity"
	OpAddLiquidity        = "add_liquidity"
	OpRemoveLiquidity     = "remove_liquidity"
	OpSwap                = "swap"
	OpSimulate            = "simulate"
	OpCollectFees         = "collect_fees"
	OpPause               = "pause"
	OpResume              = "resume"
	OpSetFee              = "set_fee"
	OpTransferAdmin       = "transfer_admin"
)

// LoadScenario reads a scenario file in any format viper understands.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// normalize lowercases every name. Viper folds map keys to lower case, so
// names are matched case-insensitively everywhere.
func (s *Scenario) normalize() {
	for i := range s.Assets {
		s.Assets[i] = strings.ToLower(s.Assets[i])
	}
	for i := range s.Pools {
		p := &s.Pools[i]
		p.Name = strings.ToLower(p.Name)
		p.AssetA = strings.ToLower(p.AssetA)
		p.AssetB = strings.ToLower(p.AssetB)
		p.Admin = strings.ToLower(p.Admin)
	}
	for i := range s.Steps {
		st := &s.Steps[i]
		st.Op = strings.ToLower(st.Op)
		st.Pool = strings.ToLower(st.Pool)
		st.Actor = strings.ToLower(st.Actor)
		st.NewAdmin = strings.ToLower(st.NewAdmin)
	}
}

// Validate checks that every name a pool or step uses is declared.
func (s Scenario) Validate() error {
	assets := make(map[string]bool, len(s.Assets))
	for _, a := range s.Assets {
		if assets[a] {
			return fmt.Errorf("asset %q declared twice", a)
		}
		assets[a] = true
	}
	for actor, funds := range s.Actors {
		for asset := range funds {
			if !assets[asset] {
				return fmt.Errorf("actor %q funded with undeclared asset %q", actor, asset)
			}
		}
	}

	pools := make(map[string]bool, len(s.Pools))
	for _, p := range s.Pools {
		if p.Name == "" {
			return fmt.Errorf("pool without a name")
		}
		if pools[p.Name] {
			return fmt.Errorf("pool %q declared twice", p.Name)
		}
		if !assets[p.AssetA] || !assets[p.AssetB] {
			return fmt.Errorf("pool %q uses undeclared assets", p.Name)
		}
		if p.Admin == "" {
			return fmt.Errorf("pool %q has no admin", p.Name)
		}
		pools[p.Name] = true
	}

	for i, step := range s.Steps {
		if !pools[step.Pool] {
			return fmt.Errorf("step %d (%s): unknown pool %q", i, step.Op, step.Pool)
		}
		switch step.Op {
		case OpAddInitialLiquidity, OpAddLiquidity, OpRemoveLiquidity, OpSwap, OpCollectFees,
			OpPause, OpResume, OpSetFee, OpTransferAdmin:
			if step.Actor == "" {
				return fmt.Errorf("step %d (%s): actor is required", i, step.Op)
			}
		case OpSimulate:
		default:
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
	}
	return nil
}
