package rpc

import (
	"sync"

	"github.com/pkg/errors"
)

const (
	Tcp  Transport = "tcp"
	Http Transport = "http"
)

// Transport selects how net/rpc calls travel between coordinator and workers.
type Transport string

func (t Transport) Verify() error {
	switch t {
	case Tcp, Http:
		return nil
	}
	return errors.Errorf("unknown transport %q", t)
}

type Server interface {
	Address() string
	Run() error
	Stop() error
	Wait() *sync.WaitGroup
}

type Client interface {
	Connect() error
	Call(method string, request interface{}, reply interface{}) error
	Disconnect() error
	Address() string
}

func NewServer(transport Transport, object interface{}, address string, name string) Server {
	if transport == Http {
		return NewHttpServer(object, address, name)
	}
	return NewTcpServer(object, address, name)
}

func NewClient(transport Transport, serverAddress string, name string) Client {
	if transport == Http {
		return NewHttpClient(serverAddress, name)
	}
	return NewTcpClient(serverAddress, name)
}

// ServerClient pairs a node's own server with a client to another node.
type ServerClient struct {
	Server Server
	Client Client
}

func NewServerClient(transport Transport, object interface{}, serverAddress string, serverName string, clientAddress string, clientName string) ServerClient {
	return ServerClient{
		Server: NewServer(transport, object, serverAddress, serverName),
		Client: NewClient(transport, clientAddress, clientName),
	}
}
