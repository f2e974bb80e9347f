package serverconfig

type Config struct {
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Board      BoardConfig      `yaml:"board" mapstructure:"board"`
	Local      LocalSaveConfig  `yaml:"local" mapstructure:"local"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	IsDev      bool             `yaml:"is_dev" mapstructure:"is_dev"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
	ShowSQL  bool   `yaml:"show_sql" mapstructure:"show_sql"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// StartItem 是新棋盘（没有存档时）的初始物品。
type StartItem struct {
	ItemID string `yaml:"item_id" mapstructure:"item_id"`
	Row    int    `yaml:"row" mapstructure:"row"`
	Col    int    `yaml:"col" mapstructure:"col"`
}

type BoardConfig struct {
	Size             int         `yaml:"size" mapstructure:"size"`
	CatalogPath      string      `yaml:"catalog_path" mapstructure:"catalog_path"`
	Storage          string      `yaml:"storage" mapstructure:"storage"`                     // memory/mongodb/mysql/local
	ProductionPolicy string      `yaml:"production_policy" mapstructure:"production_policy"` // click/timed
	TickMillis       int         `yaml:"tick_ms" mapstructure:"tick_ms"`
	FlushMillis      int         `yaml:"flush_ms" mapstructure:"flush_ms"`
	AskTimeoutMillis int         `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
	Seed             int64       `yaml:"seed" mapstructure:"seed"` // 0 表示按时间取种子
	StartItems       []StartItem `yaml:"start_items" mapstructure:"start_items"`
}

// LocalSaveConfig 对应 gdata 本地存档（单机/开发环境）。
type LocalSaveConfig struct {
	AppName string `yaml:"app_name" mapstructure:"app_name"`
}
