package rpc

import (
	"context"
	"net"
	"net/http"
	"net/rpc"
	"sync"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/pkg/errors"
)

type HttpServer struct {
	address  string
	listener net.Listener
	mux      *http.ServeMux
	object   interface{}
	server   *http.Server
	stopOnce sync.Once

	Logger bslogger.Logger
	Name   string
	WG     *sync.WaitGroup
}

func NewHttpServer(object interface{}, address string, name string) *HttpServer {
	return &HttpServer{
		address: address,
		mux:     http.NewServeMux(),
		object:  object,
		Logger:  bslogger.NewLogger(name, bslogger.Normal, nil),
		Name:    name,
		WG:      &sync.WaitGroup{},
	}
}

func (hs *HttpServer) Address() string {
	if hs.listener != nil {
		return hs.listener.Addr().String()
	}
	return hs.address
}

func (hs *HttpServer) Wait() *sync.WaitGroup {
	return hs.WG
}

func (hs *HttpServer) Run() error {
	handler := rpc.NewServer()
	err := handler.Register(hs.object)
	if err != nil {
		hs.Logger.Error("Registering object")
		return errors.Wrap(err, "registering rpc object")
	}

	// net/rpc only registers on the default mux; swap ours in for the call
	// https://github.com/golang/go/issues/13395
	oldMux := http.DefaultServeMux
	http.DefaultServeMux = hs.mux
	handler.HandleHTTP(rpc.DefaultRPCPath, rpc.DefaultDebugPath)
	http.DefaultServeMux = oldMux

	hs.listener, err = net.Listen("tcp", hs.address)
	if err != nil {
		hs.Logger.Errorf("Listening at address %s", hs.address)
		return errors.Wrapf(err, "listening at %s", hs.address)
	}

	// Serve until a stop signal is received
	hs.server = &http.Server{Handler: hs.mux}
	hs.WG.Add(1)
	go func() {
		if err := hs.server.Serve(hs.listener); err != http.ErrServerClosed {
			hs.Logger.Errorf("Serving at address %s - %s", hs.Address(), err)
		}
	}()

	hs.Logger.Infof("Running server at address %s", hs.Address())
	return nil
}

func (hs *HttpServer) Stop() error {
	if hs.server == nil {
		return errors.New("server is not running")
	}
	var err error
	hs.stopOnce.Do(func() {
		defer hs.WG.Done()
		hs.Logger.Infof("Shutting down server at address %s", hs.Address())
		if err = hs.server.Shutdown(context.Background()); err != nil {
			hs.Logger.Errorf("Shutting down server at address %s", hs.Address())
		}
	})
	return err
}
