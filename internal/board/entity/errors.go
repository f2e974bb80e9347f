package entity

import "MergeIsland/modules/kit/errx"

const (
	CodeCellOccupied        errx.Code = "BOARD_CELL_OCCUPIED"
	CodeCellOutOfRange      errx.Code = "BOARD_CELL_OUT_OF_RANGE"
	CodeInvalidDefinition   errx.Code = "BOARD_INVALID_DEFINITION"
	CodeItemNotFound        errx.Code = "BOARD_ITEM_NOT_FOUND"
	CodeNilTarget           errx.Code = "BOARD_NIL_TARGET"
	CodeItemNotOnBoard      errx.Code = "BOARD_ITEM_NOT_ON_BOARD"
	CodeReentrantCall       errx.Code = "BOARD_REENTRANT_CALL"
	CodeSnapshotNotFound    errx.Code = "BOARD_SNAPSHOT_NOT_FOUND"
	CodeSnapshotUnsupported errx.Code = "BOARD_SNAPSHOT_UNSUPPORTED"
)

// 前置条件违反，均为业务类错误，调用方决定重试或忽略。
var (
	ErrCellOccupied        = errx.NewBiz(CodeCellOccupied, "目标格子已被占用")
	ErrCellOutOfRange      = errx.NewBiz(CodeCellOutOfRange, "格子超出棋盘范围")
	ErrInvalidDefinition   = errx.NewBiz(CodeInvalidDefinition, "物品定义无效")
	ErrItemNotFound        = errx.NewBiz(CodeItemNotFound, "物品不存在")
	ErrNilTarget           = errx.NewBiz(CodeNilTarget, "拖放目标为空")
	ErrItemNotOnBoard      = errx.NewBiz(CodeItemNotOnBoard, "物品不在棋盘上")
	ErrReentrantCall       = errx.NewBiz(CodeReentrantCall, "棋盘操作进行中，拒绝重入调用")
	ErrSnapshotNotFound    = errx.NewBiz(CodeSnapshotNotFound, "棋盘存档不存在")
	ErrSnapshotUnsupported = errx.NewBiz(CodeSnapshotUnsupported, "不支持的存档格式版本")
)
