package common

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// OptionMap indexes the options of one sub-command by name
type OptionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

// NewOptionMap indexes options by name
func NewOptionMap(options []*discordgo.ApplicationCommandInteractionDataOption) OptionMap {
	m := make(OptionMap, len(options))
	for _, opt := range options {
		if opt != nil {
			m[opt.Name] = opt
		}
	}
	return m
}

// Int returns an integer option. Discord sends integers as JSON numbers, which
// decode to float64; fractional or out of range values are rejected.
func (m OptionMap) Int(name string) (int64, error) {
	opt, ok := m[name]
	if !ok || opt.Value == nil {
		return 0, fmt.Errorf("missing option %q", name)
	}

	switch v := opt.Value.(type) {
	case float64:
		if v != math.Trunc(v) || v >= 1<<63 || v < -(1<<63) {
			return 0, fmt.Errorf("option %q is not an integer: %v", name, v)
		}
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return 0, fmt.Errorf("option %q has unexpected type %T", name, opt.Value)
	}
}

// OptionalInt returns an integer option or def when it is absent
func (m OptionMap) OptionalInt(name string, def int64) (int64, error) {
	if _, ok := m[name]; !ok {
		return def, nil
	}
	return m.Int(name)
}

// String returns a string option
func (m OptionMap) String(name string) (string, error) {
	opt, ok := m[name]
	if !ok || opt.Value == nil {
		return "", fmt.Errorf("missing option %q", name)
	}
	s, ok := opt.Value.(string)
	if !ok {
		return "", fmt.Errorf("option %q has unexpected type %T", name, opt.Value)
	}
	return s, nil
}

// Snowflake returns a channel, user or role option as an id
func (m OptionMap) Snowflake(name string) (int64, error) {
	s, err := m.String(name)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("option %q is not a snowflake: %w", name, err)
	}
	return id, nil
}

// SetChannelOptions are the options of /bet setchannel
type SetChannelOptions struct {
	ChannelID int64
}

// CreateOptions are the options of /bet create
type CreateOptions struct {
	Title  string
	Amount int64
}

// JoinOptions are the options of /bet join
type JoinOptions struct {
	BetID  int64
	Choice string
}

// BetOptions are the options of /bet status and /bet close
type BetOptions struct {
	BetID int64
}

// SettleOptions are the options of /bet settle
type SettleOptions struct {
	BetID   int64
	Winners string
}

// LeaderboardOptions are the options of /bet leaderboard
type LeaderboardOptions struct {
	Limit int
}

func DecodeSetChannel(m OptionMap) (SetChannelOptions, error) {
	id, err := m.Snowflake("channel")
	return SetChannelOptions{ChannelID: id}, err
}

func DecodeCreate(m OptionMap) (CreateOptions, error) {
	var opts CreateOptions
	var err error
	if opts.Title, err = m.String("title"); err != nil {
		return opts, err
	}
	opts.Amount, err = m.Int("amount")
	return opts, err
}

func DecodeJoin(m OptionMap) (JoinOptions, error) {
	var opts JoinOptions
	var err error
	if opts.BetID, err = m.Int("bet_id"); err != nil {
		return opts, err
	}
	opts.Choice, err = m.String("choice")
	return opts, err
}

func DecodeBet(m OptionMap) (BetOptions, error) {
	id, err := m.Int("bet_id")
	return BetOptions{BetID: id}, err
}

func DecodeSettle(m OptionMap) (SettleOptions, error) {
	var opts SettleOptions
	var err error
	if opts.BetID, err = m.Int("bet_id"); err != nil {
		return opts, err
	}
	opts.Winners, err = m.String("winners")
	return opts, err
}

func DecodeLeaderboard(m OptionMap) (LeaderboardOptions, error) {
	limit, err := m.OptionalInt("limit", 0)
	if err != nil {
		return LeaderboardOptions{}, err
	}
	if limit > math.MaxInt32 || limit < math.MinInt32 {
		return LeaderboardOptions{}, fmt.Errorf("option \"limit\" out of range: %d", limit)
	}
	return LeaderboardOptions{Limit: int(limit)}, nil
}
