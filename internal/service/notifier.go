package service

// ChangeNotifier 在某张表的数据写入成功后收到通知，驱动订阅端整表刷新。
type ChangeNotifier interface {
	Notify(table string)
}

func notifyChange(n ChangeNotifier, table string) {
	if n != nil {
		n.Notify(table)
	}
}
