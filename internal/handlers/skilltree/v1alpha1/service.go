// Package v1alpha1 exposes the character builder over gRPC. Requests and
// responses are google.protobuf.Struct messages keyed by snake_case field
// names, so no generated code is needed on either side.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/skilltree-api/internal/errors"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "skilltree.api.v1alpha1.CharacterBuilderService"

// Method names
const (
	MethodNewSession   = "NewSession"
	MethodGetCharacter = "GetCharacter"
	MethodExecute      = "Execute"
	MethodSave         = "Save"
	MethodLoad         = "Load"
	MethodExport       = "Export"
	MethodImport       = "Import"
	MethodListSlots    = "ListSlots"
	MethodDeleteSlot   = "DeleteSlot"
	MethodListNodes    = "ListNodes"
	MethodListTraits   = "ListTraits"
)

// FullMethod returns the path a client invokes for method
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// CharacterBuilderServiceServer is the server API for the builder service
type CharacterBuilderServiceServer interface {
	NewSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCharacter(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Execute(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Save(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Load(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Export(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Import(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSlots(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteSlot(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListNodes(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTraits(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(CharacterBuilderServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			server := srv.(CharacterBuilderServiceServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(server, ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the builder service for grpc.Server registration
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CharacterBuilderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodNewSession, CharacterBuilderServiceServer.NewSession),
		unary(MethodGetCharacter, CharacterBuilderServiceServer.GetCharacter),
		unary(MethodExecute, CharacterBuilderServiceServer.Execute),
		unary(MethodSave, CharacterBuilderServiceServer.Save),
		unary(MethodLoad, CharacterBuilderServiceServer.Load),
		unary(MethodExport, CharacterBuilderServiceServer.Export),
		unary(MethodImport, CharacterBuilderServiceServer.Import),
		unary(MethodListSlots, CharacterBuilderServiceServer.ListSlots),
		unary(MethodDeleteSlot, CharacterBuilderServiceServer.DeleteSlot),
		unary(MethodListNodes, CharacterBuilderServiceServer.ListNodes),
		unary(MethodListTraits, CharacterBuilderServiceServer.ListTraits),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterCharacterBuilderServiceServer registers srv with s
func RegisterCharacterBuilderServiceServer(s grpc.ServiceRegistrar, srv CharacterBuilderServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls the builder service over a connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a builder client
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with the given request fields. Errors are converted
// back into the project error type so reasons survive the round trip.
func (c *Client) Call(ctx context.Context, method string, fields map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, errors.FromGRPCError(err)
	}
	return out, nil
}
