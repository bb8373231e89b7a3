package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// EmployeeDirectoryServiceName は社員ディレクトリ gRPC サービスの完全修飾名です。
const EmployeeDirectoryServiceName = "employee.v1.EmployeeDirectory"

const (
	EmployeeDirectory_ListEmployees_FullMethodName  = "/" + EmployeeDirectoryServiceName + "/ListEmployees"
	EmployeeDirectory_GetEmployee_FullMethodName    = "/" + EmployeeDirectoryServiceName + "/GetEmployee"
	EmployeeDirectory_CreateEmployee_FullMethodName = "/" + EmployeeDirectoryServiceName + "/CreateEmployee"
	EmployeeDirectory_UpdateEmployee_FullMethodName = "/" + EmployeeDirectoryServiceName + "/UpdateEmployee"
	EmployeeDirectory_DeleteEmployee_FullMethodName = "/" + EmployeeDirectoryServiceName + "/DeleteEmployee"
)

// EmployeeDirectoryServer は employee.v1.EmployeeDirectory のサーバー側インタフェースです。
// メッセージは protobuf の well-known type で表現します。
type EmployeeDirectoryServer interface {
	ListEmployees(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	GetEmployee(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	CreateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateEmployee(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteEmployee(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// EmployeeDirectory_ServiceDesc は employee.v1.EmployeeDirectory の grpc.ServiceDesc です。
var EmployeeDirectory_ServiceDesc = grpc.ServiceDesc{
	ServiceName: EmployeeDirectoryServiceName,
	HandlerType: (*EmployeeDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListEmployees",
			Handler:    unaryHandler(EmployeeDirectory_ListEmployees_FullMethodName, EmployeeDirectoryServer.ListEmployees),
		},
		{
			MethodName: "GetEmployee",
			Handler:    unaryHandler(EmployeeDirectory_GetEmployee_FullMethodName, EmployeeDirectoryServer.GetEmployee),
		},
		{
			MethodName: "CreateEmployee",
			Handler:    unaryHandler(EmployeeDirectory_CreateEmployee_FullMethodName, EmployeeDirectoryServer.CreateEmployee),
		},
		{
			MethodName: "UpdateEmployee",
			Handler:    unaryHandler(EmployeeDirectory_UpdateEmployee_FullMethodName, EmployeeDirectoryServer.UpdateEmployee),
		},
		{
			MethodName: "DeleteEmployee",
			Handler:    unaryHandler(EmployeeDirectory_DeleteEmployee_FullMethodName, EmployeeDirectoryServer.DeleteEmployee),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "employee/v1/directory.proto",
}

// RegisterEmployeeDirectoryServer は srv を s に登録します。
func RegisterEmployeeDirectoryServer(s grpc.ServiceRegistrar, srv EmployeeDirectoryServer) {
	s.RegisterService(&EmployeeDirectory_ServiceDesc, srv)
}

// unaryHandler は型付きのメソッドを grpc.MethodHandler に変換します。
func unaryHandler[Req any, Resp proto.Message, PReq interface {
	*Req
	proto.Message
}](fullMethod string, call func(EmployeeDirectoryServer, context.Context, PReq) (Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EmployeeDirectoryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EmployeeDirectoryServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// EmployeeDirectoryClient は employee.v1.EmployeeDirectory のクライアントです。
type EmployeeDirectoryClient struct {
	cc grpc.ClientConnInterface
}

// NewEmployeeDirectoryClient は EmployeeDirectoryClient を生成します。
func NewEmployeeDirectoryClient(cc grpc.ClientConnInterface) *EmployeeDirectoryClient {
	return &EmployeeDirectoryClient{cc: cc}
}

func (c *EmployeeDirectoryClient) ListEmployees(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, EmployeeDirectory_ListEmployees_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EmployeeDirectoryClient) GetEmployee(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EmployeeDirectory_GetEmployee_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EmployeeDirectoryClient) CreateEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EmployeeDirectory_CreateEmployee_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EmployeeDirectoryClient) UpdateEmployee(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EmployeeDirectory_UpdateEmployee_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EmployeeDirectoryClient) DeleteEmployee(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EmployeeDirectory_DeleteEmployee_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
