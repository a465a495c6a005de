package terminal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe-classic/internal/config"
	"github.com/rocketscienceinc/tictactoe-classic/internal/entity"
	"github.com/rocketscienceinc/tictactoe-classic/internal/usecase"
)

const (
	pageHome   = "home"
	pageGame   = "game"
	pageResult = "result"

	buttonPlayAgain = "Play again"
	buttonHome      = "Home"
	buttonQuit      = "Quit"
)

type uGame interface {
	StartFromConfig() (bool, error)
	StartTwoPlayer(symbolOne entity.Symbol) error
	StartSinglePlayer(humanSymbol entity.Symbol, humanFirst bool) error

	MakeTurn(row, col int) (*usecase.TurnResult, error)
	ComputerTurn(ctx context.Context) (*usecase.TurnResult, error)
	ComputerToMove() bool

	PlayAgain() error
	Stop()
	Snapshot() (usecase.Snapshot, error)
}

// choice is what the home menu collects.
type choice struct {
	single        bool
	symbol        entity.Symbol
	computerFirst bool
}

// Server is the terminal front end. All fields except uGame are owned by the tview event loop.
type Server struct {
	logger *slog.Logger
	uGame  uGame

	app    *tview.Application
	pages  *tview.Pages
	board  *tview.Table
	score  *tview.TextView
	status *tview.TextView
	result *tview.Modal

	choice choice

	ctx        context.Context
	turnCtx    context.Context
	cancelTurn context.CancelFunc
	thinking   bool
}

func New(logger *slog.Logger, uGame uGame, conf config.Game) *Server {
	server := &Server{
		logger: logger.With("component", "terminal"),
		uGame:  uGame,
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		ctx:    context.Background(),
		choice: choice{
			single:        conf.Mode != config.ModeTwo,
			symbol:        entity.SymbolX,
			computerFirst: conf.ComputerFirst,
		},
	}

	if symbol, err := entity.ParseSymbol(conf.PlayerOneSymbol); err == nil {
		server.choice.symbol = symbol
	}

	server.pages.
		AddPage(pageHome, server.homePage(), true, true).
		AddPage(pageGame, server.gamePage(), true, false).
		AddPage(pageResult, server.resultPage(), false, false)

	server.app.
		SetRoot(server.pages, true).
		SetInputCapture(server.handleKey)

	return server
}

// Start - runs the terminal UI until the player quits or ctx is done.
func (that *Server) Start(ctx context.Context) error {
	log := that.logger.With("method", "Start")

	that.ctx = ctx

	started, err := that.uGame.StartFromConfig()
	if err != nil {
		return fmt.Errorf("failed to start configured game: %w", err)
	}

	if started {
		log.Info("Game started from config")
		that.showGame()
	}

	go func() {
		<-ctx.Done()
		that.app.Stop()
	}()

	if err = that.app.Run(); err != nil {
		return fmt.Errorf("failed to run terminal: %w", err)
	}

	that.stopTurn()
	log.Info("Terminal closed")

	return nil
}

func (that *Server) homePage() tview.Primitive {
	symbols := []string{entity.SymbolX.String(), entity.SymbolO.String()}
	modes := []string{"Versus computer", "Two players"}

	modeIndex := 0
	if !that.choice.single {
		modeIndex = 1
	}

	symbolIndex := 0
	if that.choice.symbol == entity.SymbolO {
		symbolIndex = 1
	}

	form := tview.NewForm().
		AddDropDown("Mode", modes, modeIndex, func(_ string, index int) {
			that.choice.single = index == 0
		}).
		AddDropDown("Symbol (you / player one)", symbols, symbolIndex, func(option string, _ int) {
			if symbol, err := entity.ParseSymbol(option); err == nil {
				that.choice.symbol = symbol
			}
		}).
		AddCheckbox("Computer goes first", that.choice.computerFirst, func(checked bool) {
			that.choice.computerFirst = checked
		}).
		AddButton("Start", that.handleStart).
		AddButton(buttonQuit, that.app.Stop)

	form.SetBorder(true).SetTitle(" Tic-Tac-Toe ").SetTitleAlign(tview.AlignCenter)

	return center(form, 44, 13)
}

func (that *Server) gamePage() tview.Primitive {
	that.board = tview.NewTable().
		SetBorders(true).
		SetSelectable(true, true).
		SetSelectedFunc(that.handleSelect)

	that.score = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	that.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	help := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText("arrows: move  enter: play  h: home  q: quit")

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(that.score, 1, 0, false).
		AddItem(center(that.board, 13, 7), 0, 1, true).
		AddItem(that.status, 1, 0, false).
		AddItem(help, 1, 0, false)

	layout.SetBorder(true).SetTitle(" Tic-Tac-Toe ")

	return layout
}

func (that *Server) resultPage() tview.Primitive {
	that.result = tview.NewModal().
		AddButtons([]string{buttonPlayAgain, buttonHome, buttonQuit}).
		SetDoneFunc(that.handleResult)

	return that.result
}

// center wraps p in a fixed-size box in the middle of the screen.
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

func (that *Server) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}

	// the result modal has its own buttons
	name, _ := that.pages.GetFrontPage()
	if name == pageResult {
		return event
	}

	switch {
	case event.Rune() == 'q':
		that.app.Stop()
		return nil
	case event.Rune() == 'h' && name == pageGame:
		that.goHome()
		return nil
	}

	return event
}
