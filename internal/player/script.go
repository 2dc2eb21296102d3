package player

import (
	"context"
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/nnaakkaaii/tilemerge/internal/domain"
)

// ScriptEntry はスクリプトが定義すべき関数名
const ScriptEntry = "next_move"

var ErrScript = errors.New("script error")

// Script はLuaスクリプトで手を決めるプレイヤー
// スクリプトは next_move(board, score, size) を定義し、"w" "a" "s" "d" のいずれかを返す
// board は1始まりの行のテーブル
type Script struct {
	state *lua.LState
	fn    lua.LValue
}

// NewScript はスクリプトを読み込んでScriptを生成する
func NewScript(src string) (*Script, error) {
	state := lua.NewState()
	if err := state.DoString(src); err != nil {
		state.Close()
		return nil, fmt.Errorf("%w: load: %v", ErrScript, err)
	}
	fn := state.GetGlobal(ScriptEntry)
	if fn.Type() != lua.LTFunction {
		state.Close()
		return nil, fmt.Errorf("%w: %s is not defined", ErrScript, ScriptEntry)
	}
	return &Script{state: state, fn: fn}, nil
}

// Close はLuaの状態を解放する
func (s *Script) Close() {
	s.state.Close()
}

func (s *Script) NextMove(ctx context.Context, board *domain.Board) (string, error) {
	s.state.SetContext(ctx)
	defer s.state.RemoveContext()

	err := s.state.CallByParam(lua.P{
		Fn:      s.fn,
		NRet:    1,
		Protect: true,
	}, s.boardTable(board), lua.LNumber(board.Score()), lua.LNumber(board.Size()))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %s: %v", ErrScript, ScriptEntry, err)
	}

	ret := s.state.Get(-1)
	s.state.Pop(1)
	token, ok := ret.(lua.LString)
	if !ok {
		return "", fmt.Errorf("%w: %s returned %s, want string", ErrScript, ScriptEntry, ret.Type())
	}
	return string(token), nil
}

func (s *Script) boardTable(board *domain.Board) *lua.LTable {
	rows := s.state.NewTable()
	for r := 0; r < board.Size(); r++ {
		row := s.state.NewTable()
		for c := 0; c < board.Size(); c++ {
			row.RawSetInt(c+1, lua.LNumber(board.Get(r, c)))
		}
		rows.RawSetInt(r+1, row)
	}
	return rows
}
