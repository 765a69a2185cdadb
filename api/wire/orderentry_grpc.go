package wire

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service and method names as they appear on the wire, matching
// api/proto/orderentry.proto.
const (
	OrderEntryServiceName = "kestrel.v1.OrderEntry"

	OrderEntry_Submit_FullMethodName = "/kestrel.v1.OrderEntry/Submit"
	OrderEntry_Cancel_FullMethodName = "/kestrel.v1.OrderEntry/Cancel"
	OrderEntry_Modify_FullMethodName = "/kestrel.v1.OrderEntry/Modify"
)

// OrderEntryClient is the client API for the OrderEntry service.
type OrderEntryClient interface {
	Submit(ctx context.Context, in *SubmitRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	Cancel(ctx context.Context, in *CancelRequest, opts ...grpc.CallOption) (*CommandResponse, error)
	Modify(ctx context.Context, in *ModifyRequest, opts ...grpc.CallOption) (*CommandResponse, error)
}

type orderEntryClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderEntryClient(cc grpc.ClientConnInterface) OrderEntryClient {
	return &orderEntryClient{cc}
}

func (c *orderEntryClient) Submit(ctx context.Context, in *SubmitRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	out := new(CommandResponse)
	if err := c.cc.Invoke(ctx, OrderEntry_Submit_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderEntryClient) Cancel(ctx context.Context, in *CancelRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	out := new(CommandResponse)
	if err := c.cc.Invoke(ctx, OrderEntry_Cancel_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderEntryClient) Modify(ctx context.Context, in *ModifyRequest, opts ...grpc.CallOption) (*CommandResponse, error) {
	out := new(CommandResponse)
	if err := c.cc.Invoke(ctx, OrderEntry_Modify_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// OrderEntryServer is the server API for the OrderEntry service. All
// implementations must embed UnimplementedOrderEntryServer.
type OrderEntryServer interface {
	Submit(context.Context, *SubmitRequest) (*CommandResponse, error)
	Cancel(context.Context, *CancelRequest) (*CommandResponse, error)
	Modify(context.Context, *ModifyRequest) (*CommandResponse, error)
	mustEmbedUnimplementedOrderEntryServer()
}

// UnimplementedOrderEntryServer must be embedded for forward
// compatibility.
type UnimplementedOrderEntryServer struct{}

func (UnimplementedOrderEntryServer) Submit(context.Context, *SubmitRequest) (*CommandResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Submit not implemented")
}

func (UnimplementedOrderEntryServer) Cancel(context.Context, *CancelRequest) (*CommandResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Cancel not implemented")
}

func (UnimplementedOrderEntryServer) Modify(context.Context, *ModifyRequest) (*CommandResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Modify not implemented")
}

func (UnimplementedOrderEntryServer) mustEmbedUnimplementedOrderEntryServer() {}

func RegisterOrderEntryServer(s grpc.ServiceRegistrar, srv OrderEntryServer) {
	s.RegisterService(&OrderEntry_ServiceDesc, srv)
}

func _OrderEntry_Submit_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SubmitRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderEntryServer).Submit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: OrderEntry_Submit_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderEntryServer).Submit(ctx, req.(*SubmitRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OrderEntry_Cancel_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CancelRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderEntryServer).Cancel(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: OrderEntry_Cancel_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderEntryServer).Cancel(ctx, req.(*CancelRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _OrderEntry_Modify_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ModifyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderEntryServer).Modify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: OrderEntry_Modify_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderEntryServer).Modify(ctx, req.(*ModifyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// OrderEntry_ServiceDesc is the grpc.ServiceDesc for the OrderEntry
// service.
var OrderEntry_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderEntryServiceName,
	HandlerType: (*OrderEntryServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Submit",
			Handler:    _OrderEntry_Submit_Handler,
		},
		{
			MethodName: "Cancel",
			Handler:    _OrderEntry_Cancel_Handler,
		},
		{
			MethodName: "Modify",
			Handler:    _OrderEntry_Modify_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/proto/orderentry.proto",
}
